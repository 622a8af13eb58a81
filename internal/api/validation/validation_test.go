package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colts18seth/jobly/internal/api/dto"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

func TestNew_CompilesAllSchemas(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	for _, id := range []string{CompanyCreate, CompanyPatch, JobCreate, JobPatch, UserRegister, UserPatch, Login} {
		assert.Contains(t, v.schemas, id)
	}
}

func TestDecode_Valid(t *testing.T) {
	v := MustNew()
	var req dto.JobCreateRequest
	err := v.Decode(JobCreate, []byte(`{"title":"Engineer","salary":100000,"equity":0.1,"company_handle":"acme"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", req.Title)
	assert.Equal(t, 0.1, req.Equity)
}

func TestDecode_SchemaViolations(t *testing.T) {
	v := MustNew()
	cases := map[string]string{
		"missing required": `{"title":"Engineer"}`,
		"equity above one": `{"title":"E","salary":1,"equity":1.5,"company_handle":"acme"}`,
		"extra property":   `{"title":"E","salary":1,"equity":0,"company_handle":"acme","is_hot":true}`,
		"not json":         `{"title":`,
		"empty":            ``,
	}
	for name, body := range cases {
		var req dto.JobCreateRequest
		err := v.Decode(JobCreate, []byte(body), &req)
		assert.True(t, apperrors.IsValidation(err), name)
	}
}

func TestDecode_RegistrationRejectsIsAdmin(t *testing.T) {
	v := MustNew()
	var req dto.UserRegisterRequest
	err := v.Decode(UserRegister, []byte(`{"username":"u","password":"secret","first_name":"a","last_name":"b","email":"a@b.co","is_admin":true}`), &req)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.NotEmpty(t, de.Details["errors"])
}

func TestPatch_FlatScalarsOnly(t *testing.T) {
	v := MustNew()
	for _, body := range []string{`[]`, `"x"`, `null`, `{"name":{"first":"a"}}`, `{"name":["a"]}`} {
		_, err := v.Patch(CompanyPatch, []byte(body))
		assert.True(t, apperrors.IsValidation(err), body)
	}
}

func TestPatch_KeepsNullsAndNormalizesIntegers(t *testing.T) {
	v := MustNew()
	fields, err := v.Patch(CompanyPatch, []byte(`{"logo_url":null,"num_employees":250}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"logo_url": nil, "num_employees": int64(250)}, fields)
}

func TestPatch_TypeChecksKnownFields(t *testing.T) {
	v := MustNew()
	_, err := v.Patch(CompanyPatch, []byte(`{"num_employees":"many"}`))
	assert.True(t, apperrors.IsValidation(err))

	_, err = v.Patch(JobPatch, []byte(`{"equity":2}`))
	assert.True(t, apperrors.IsValidation(err))
}

func TestPatch_UnknownFieldsPassThroughToBuilder(t *testing.T) {
	v := MustNew()
	fields, err := v.Patch(UserPatch, []byte(`{"is_admin":true}`))
	require.NoError(t, err)
	assert.Equal(t, true, fields["is_admin"])
}

func TestEmployeeCountFitsColumn(t *testing.T) {
	v := MustNew()

	var req dto.CompanyCreateRequest
	err := v.Decode(CompanyCreate, []byte(`{"handle":"big","name":"Big","num_employees":3000000000}`), &req)
	assert.True(t, apperrors.IsValidation(err))
	require.NoError(t, v.Decode(CompanyCreate, []byte(`{"handle":"big","name":"Big","num_employees":2147483647}`), &req))

	_, err = v.Patch(CompanyPatch, []byte(`{"num_employees":3000000000}`))
	assert.True(t, apperrors.IsValidation(err))
	fields, err := v.Patch(CompanyPatch, []byte(`{"num_employees":2147483647}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2147483647), fields["num_employees"])
}
