package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"Secret1!": true,
		"Ab1_xy":   true,
		"Ab1!":     false,
		"secret1!": false,
		"Secrets!": false,
		"Secret12": false,
		"Çaaaa1 ":  true,
		"":         false,
	}
	for in, want := range tests {
		assert.Equal(t, want, StrongPassword(in), in)
	}
}

type sample struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,password"`
	Lat      *float64 `json:"latitude" binding:"required,latitude"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var s sample
	return c.ShouldBindJSON(&s)
}

func TestToDetails_Validation(t *testing.T) {
	err := bind(t, `{"email":"nope","password":"weak","latitude":0}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "email", Message: "must be a valid email"},
		{Field: "password", Message: PasswordRuleMessage},
	}, details)
}

func TestToDetails_ZeroLatitudeIsPresent(t *testing.T) {
	assert.NoError(t, bind(t, `{"email":"a@b.co","password":"Secret1!","latitude":0}`))
}

func TestToDetails_BadJSON(t *testing.T) {
	err := bind(t, `{"email":`)
	require.Error(t, err)
	e := FromBindError(err)
	assert.Equal(t, errs.KindValidation, e.Kind)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "payload", e.Fields[0].Field)
}

func TestToDetails_WrongType(t *testing.T) {
	err := bind(t, `{"email":"a@b.co","password":"Secret1!","latitude":"x"}`)
	require.Error(t, err)
	details := ToDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "latitude", details[0].Field)
}
