// Package api wires the HTTP surface: routes, request binding and error
// mapping. All business rules live in internal/service; all balance math in
// internal/ledger.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shariqwaseem/sw-clone/internal/auth"
	"github.com/shariqwaseem/sw-clone/internal/ledger"
	"github.com/shariqwaseem/sw-clone/internal/middleware"
	"github.com/shariqwaseem/sw-clone/internal/models"
	"github.com/shariqwaseem/sw-clone/internal/service"
	"github.com/shariqwaseem/sw-clone/internal/storage"
)

// Handler holds the services the routes dispatch to.
type Handler struct {
	authSvc    *service.AuthService
	groupSvc   *service.GroupService
	ledgerSvc  *service.LedgerService
	jwtManager *auth.JWTManager
}

// NewHandler creates a Handler.
func NewHandler(authSvc *service.AuthService, groupSvc *service.GroupService, ledgerSvc *service.LedgerService, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		authSvc:    authSvc,
		groupSvc:   groupSvc,
		ledgerSvc:  ledgerSvc,
		jwtManager: jwtManager,
	}
}

// SetupRoutes registers all routes on the router.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	authed := apiGroup.Group("")
	authed.Use(middleware.RequireAuth(h.jwtManager))
	{
		authed.POST("/groups", h.createGroup)
		authed.GET("/groups", h.listGroups)
		authed.GET("/groups/:groupId", h.getGroup)
		authed.DELETE("/groups/:groupId", h.deleteGroup)
		authed.POST("/groups/:groupId/join", h.joinGroup)
		authed.POST("/groups/:groupId/members", h.addMember)
		authed.DELETE("/groups/:groupId/members/:uid", h.removeMember)

		authed.POST("/groups/:groupId/expenses", h.createExpense)
		authed.GET("/groups/:groupId/expenses", h.listExpenses)
		authed.PUT("/expenses/:expenseId", h.updateExpense)
		authed.DELETE("/expenses/:expenseId", h.deleteExpense)

		authed.POST("/groups/:groupId/payments", h.createPayment)
		authed.GET("/groups/:groupId/payments", h.listPayments)
		authed.DELETE("/payments/:paymentId", h.deletePayment)

		authed.GET("/groups/:groupId/balances", h.getBalances)
		authed.GET("/groups/:groupId/settlements", h.getSettlements)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}

	user, token, err := h.authSvc.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		User: user, Token: token, ExpiresIn: h.authSvc.TokenDuration(),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	user, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		User: user, Token: token, ExpiresIn: h.authSvc.TokenDuration(),
	})
}

func (h *Handler) createGroup(c *gin.Context) {
	var req createGroupRequest
	if !bind(c, &req) {
		return
	}

	group, err := h.groupSvc.CreateGroup(c.Request.Context(), middleware.GetUserID(c), req.Name, req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, groupResponse{Group: group})
}

func (h *Handler) listGroups(c *gin.Context) {
	groups, err := h.groupSvc.ListGroups(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) getGroup(c *gin.Context) {
	group, members, err := h.groupSvc.GetGroup(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groupResponse{Group: group, Members: members})
}

func (h *Handler) deleteGroup(c *gin.Context) {
	if err := h.groupSvc.DeleteGroup(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) joinGroup(c *gin.Context) {
	member, err := h.groupSvc.JoinGroup(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (h *Handler) addMember(c *gin.Context) {
	var req addMemberRequest
	if !bind(c, &req) {
		return
	}

	member, err := h.groupSvc.AddMember(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"), req.Email, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

func (h *Handler) removeMember(c *gin.Context) {
	err := h.groupSvc.RemoveMember(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createExpense(c *gin.Context) {
	var req expenseRequest
	if !bind(c, &req) {
		return
	}

	expense, err := h.ledgerSvc.CreateExpense(c.Request.Context(), middleware.GetUserID(c), req.toModel(c.Param("groupId")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

func (h *Handler) listExpenses(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	expenses, err := h.ledgerSvc.ListExpenses(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"), includeDeleted)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *Handler) updateExpense(c *gin.Context) {
	var req expenseRequest
	if !bind(c, &req) {
		return
	}

	expense, err := h.ledgerSvc.UpdateExpense(c.Request.Context(), middleware.GetUserID(c), c.Param("expenseId"), req.toModel(""))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (h *Handler) deleteExpense(c *gin.Context) {
	if err := h.ledgerSvc.DeleteExpense(c.Request.Context(), middleware.GetUserID(c), c.Param("expenseId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createPayment(c *gin.Context) {
	var req paymentRequest
	if !bind(c, &req) {
		return
	}

	payment, err := h.ledgerSvc.CreatePayment(c.Request.Context(), middleware.GetUserID(c), &models.Payment{
		GroupID: c.Param("groupId"),
		FromUID: req.FromUID,
		ToUID:   req.ToUID,
		Amount:  req.Amount,
		Date:    req.Date,
		Note:    req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

func (h *Handler) listPayments(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	payments, err := h.ledgerSvc.ListPayments(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"), includeDeleted)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *Handler) deletePayment(c *gin.Context) {
	if err := h.ledgerSvc.DeletePayment(c.Request.Context(), middleware.GetUserID(c), c.Param("paymentId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getBalances(c *gin.Context) {
	balances, err := h.ledgerSvc.GroupBalances(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func (h *Handler) getSettlements(c *gin.Context) {
	settlements, err := h.ledgerSvc.SuggestedSettlements(c.Request.Context(), middleware.GetUserID(c), c.Param("groupId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if settlements == nil {
		settlements = []ledger.Settlement{}
	}
	c.JSON(http.StatusOK, gin.H{"settlements": settlements})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Status: "error", Code: "BAD_REQUEST", Message: err.Error(),
		})
		return false
	}
	return true
}

// writeError maps service and ledger errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, auth.ErrEmailExists):
		status, code = http.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrAdminRequired):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, storage.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, service.ErrUnknownParticipant),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, ledger.ErrNonPositiveTotal),
		errors.Is(err, ledger.ErrPayerSumMismatch),
		errors.Is(err, ledger.ErrSplitSumMismatch),
		errors.Is(err, ledger.ErrNegativeLineAmount):
		status, code = http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	}

	c.JSON(status, errorResponse{Status: "error", Code: code, Message: err.Error()})
	c.Error(err)
}
