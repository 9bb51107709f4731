package apihandlers

import (
	"net/http"
	"time"

	formDB "github.com/formpilot/formpilot-backend/pkg/db/form"
	"github.com/formpilot/formpilot-backend/pkg/messaging"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	formDBConn         *formDB.FormDBService
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	allowedInstanceIDs []string
	builderAPIKeys     []string
	smtpClients        *messaging.SmtpClients
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	formDBConn *formDB.FormDBService,
	allowedInstanceIDs []string,
	builderAPIKeys []string,
	smtpClients *messaging.SmtpClients,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		formDBConn:         formDBConn,
		allowedInstanceIDs: allowedInstanceIDs,
		builderAPIKeys:     builderAPIKeys,
		smtpClients:        smtpClients,
	}
}

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}
