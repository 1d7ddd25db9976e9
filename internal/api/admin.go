package api

import (
	"net/http" // HTTP status codes

	"mileage_mall/internal/service" // Back-office service

	"github.com/gin-gonic/gin" // Gin web framework
)

// DebitRequest spends mileage on a user's behalf
type DebitRequest struct {
	Amount int64 `json:"amount"` // Validated by the ledger
}

// ListUsersHandler returns one page of all users with their cached balance
func ListUsersHandler(admin *service.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := admin.Users(c.Request.Context(), pageParam(c))
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, page)
	}
}

// ApproveReturnHandler completes a requested return and refunds it
func ApproveReturnHandler(admin *service.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := admin.ApproveReturn(c.Request.Context(), pathID(c, "detailId"))
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, detail)
	}
}

// DebitMileageHandler spends a user's mileage
func DebitMileageHandler(admin *service.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DebitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		balance, err := admin.DebitMileage(c.Request.Context(), pathID(c, "userId"), req.Amount)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"mileage": balance})
	}
}

// ReconcileMileageHandler rebuilds a user's cached balance from the ledger
func ReconcileMileageHandler(admin *service.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		balance, err := admin.Reconcile(c.Request.Context(), pathID(c, "userId"))
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"mileage": balance})
	}
}
