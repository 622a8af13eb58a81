package auth

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuthenticated(t *testing.T) {
	app := newTestApp(RequireAuthenticated())

	status, _ := do(t, app, "/resource/x", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := do(t, app, "/resource/x", "Bearer "+signed(t, "alice", false))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body)
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp(RequireAdmin())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"non admin", "Bearer " + signed(t, "alice", false), http.StatusUnauthorized},
		{"admin", "Bearer " + signed(t, "root", true), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, "/resource/x", tc.header)
			assert.Equal(t, tc.want, status)
			if tc.want == http.StatusUnauthorized {
				assert.Equal(t, "Unauthorized", body)
			}
		})
	}
}

func TestRequireSelf(t *testing.T) {
	app := newTestApp(RequireSelf("username"))

	status, _ := do(t, app, "/resource/alice", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, "/resource/alice", "Bearer "+signed(t, "bob", false))
	assert.Equal(t, http.StatusUnauthorized, status)

	// admin rights do not stand in for identity
	status, _ = do(t, app, "/resource/alice", "Bearer "+signed(t, "root", true))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := do(t, app, "/resource/alice", "Bearer "+signed(t, "alice", false))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body)
}

func TestGates_ShortCircuitInOrder(t *testing.T) {
	var reached []string
	probe := func(name string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			reached = append(reached, name)
			return c.Next()
		}
	}
	app := newTestApp(probe("first"), RequireAuthenticated(), probe("second"), RequireAdmin(), probe("third"))

	status, _ := do(t, app, "/resource/x", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, []string{"first"}, reached)

	reached = nil
	status, _ = do(t, app, "/resource/x", "Bearer "+signed(t, "alice", false))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, []string{"first", "second"}, reached)

	reached = nil
	status, _ = do(t, app, "/resource/x", "Bearer "+signed(t, "root", true))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"first", "second", "third"}, reached)
}
