package api

import "github.com/shariqwaseem/sw-clone/internal/models"

// Request bodies

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=admin member"`
}

type lineRequest struct {
	UID    string  `json:"uid" binding:"required"`
	Amount float64 `json:"amount"`
}

type expenseRequest struct {
	Description string        `json:"description" binding:"required"`
	TotalAmount float64       `json:"totalAmount" binding:"required"`
	Currency    string        `json:"currency" binding:"omitempty,len=3"`
	Date        string        `json:"date" binding:"required,datetime=2006-01-02"`
	Notes       string        `json:"notes"`
	Payers      []lineRequest `json:"payers" binding:"required,min=1,dive"`
	Splits      []lineRequest `json:"splits" binding:"required,min=1,dive"`
}

type paymentRequest struct {
	FromUID string  `json:"fromUid" binding:"required"`
	ToUID   string  `json:"toUid" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	Note    string  `json:"note"`
}

// Response bodies

type authResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
}

type groupResponse struct {
	Group   *models.Group        `json:"group"`
	Members []models.GroupMember `json:"members,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r *expenseRequest) toModel(groupID string) *models.Expense {
	expense := &models.Expense{
		GroupID:     groupID,
		Description: r.Description,
		TotalAmount: r.TotalAmount,
		Currency:    r.Currency,
		Date:        r.Date,
		Notes:       r.Notes,
	}
	for _, p := range r.Payers {
		expense.Payers = append(expense.Payers, models.PayerLine{UID: p.UID, Amount: p.Amount})
	}
	for _, s := range r.Splits {
		expense.Splits = append(expense.Splits, models.SplitLine{UID: s.UID, Amount: s.Amount})
	}
	return expense
}
