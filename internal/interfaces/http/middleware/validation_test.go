package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError_ReportsAllFields(t *testing.T) {
	type registration struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", func(c *gin.Context) {
		var req registration
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("invalid input lists every failing field", func(t *testing.T) {
		body := strings.NewReader(`{"email": "not-an-email", "password": "short"}`)
		req := httptest.NewRequest("POST", "/register", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("valid input passes through", func(t *testing.T) {
		body := strings.NewReader(`{"email": "priya@example.com", "password": "long-enough-secret"}`)
		req := httptest.NewRequest("POST", "/register", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type orderInput struct {
		StoreID   string `binding:"required"`
		Email     string `binding:"email"`
		PageSize  string `binding:"oneof=A4 A3"`
		OrderID   string `binding:"uuid"`
		Copies    int    `binding:"gte=1"`
		Username  string `binding:"min=3"`
		FileName  string `binding:"max=10"`
		Locator   string `binding:"url"`
		PageCount string `binding:"numeric"`
	}

	v := validator.New()

	tests := []struct {
		field    string
		expected string
	}{
		{"StoreID", "This field is required"},
		{"Email", "Invalid email format"},
		{"PageSize", "Must be one of: A4 A3"},
		{"OrderID", "Invalid UUID format"},
		{"Username", "Must be at least 3 characters"},
	}

	err := v.Struct(orderInput{Email: "nope", PageSize: "A5", OrderID: "nope", Username: "ab", Locator: "nope", PageCount: "x"})
	require.Error(t, err)
	validationErrs := err.(validator.ValidationErrors)

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, e := range validationErrs {
				if e.Field() == tt.field {
					assert.Contains(t, getValidationMessage(e), tt.expected[:10])
					return
				}
			}
			t.Fatalf("no validation error raised for field %s", tt.field)
		})
	}
}

func TestHandleValidationError_MissingBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type input struct {
		Status string `json:"status" binding:"required"`
	}

	router := gin.New()
	router.PATCH("/orders/:id/payment", func(c *gin.Context) {
		var in input
		if err := c.ShouldBindJSON(&in); err != nil {
			HandleValidationError(c, err)
			return
		}
	})

	req := httptest.NewRequest("PATCH", "/orders/abc/payment", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
