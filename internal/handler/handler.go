// internal/handler/handler.go
package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/calistaannelise/wallzy/internal/auth"
	"github.com/calistaannelise/wallzy/internal/engine"
	"github.com/calistaannelise/wallzy/internal/scraper"
	"github.com/calistaannelise/wallzy/internal/storage"
	val "github.com/calistaannelise/wallzy/internal/validator"
)

type CombinedStorage interface {
	storage.UserStorage
	storage.CardStorage
	storage.CategoryStorage
	storage.RuleStorage
	storage.TransactionStorage
	storage.RewardStorage
}

type API struct {
	store   CombinedStorage
	tokens  *auth.TokenService
	engine  *engine.Service
	scraper *scraper.Scraper

	// Defaults used when a tap-style /recommend request omits fields.
	defaultMCC         string
	defaultAmountCents int64
}

func NewAPI(store CombinedStorage, tokens *auth.TokenService, eng *engine.Service, scr *scraper.Scraper, defaultAmountCents int64) *API {
	return &API{
		store:              store,
		tokens:             tokens,
		engine:             eng,
		scraper:            scr,
		defaultMCC:         "5999",
		defaultAmountCents: defaultAmountCents,
	}
}

// userID pulls the authenticated user id set by the auth middleware.
func userID(c *gin.Context) (int64, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	id, ok := v.(int64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return id, true
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "isodate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "mcc":
		return fmt.Sprintf("%s must be a 4-digit merchant category code", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", e.Field())
	case "min", "gte":
		return fmt.Sprintf("%s is too small", e.Field())
	case "max", "lte":
		return fmt.Sprintf("%s is too large", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
