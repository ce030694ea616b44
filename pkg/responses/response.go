package responses

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/validator"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"` // "success"
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string            `json:"status"` // "error" or "fail"
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Kind    string            `json:"kind,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PaginatedResponse represents a success response for lists with pagination details.
type PaginatedResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination holds pagination information.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response and aborts the chain.
func SendError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// SendAppError translates a service error into its HTTP representation.
// Unclassified errors are reported as 500 without leaking their cause.
func SendAppError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	statusCode := apperrors.HTTPStatus(kind)

	message := "An unexpected error occurred on the server"
	var appErr *apperrors.Error
	if kind != apperrors.KindInternal && errors.As(err, &appErr) {
		message = appErr.Message()
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
		Kind:    string(kind),
	})
}

// SendBindError reports a request binding failure with per-field details.
func SendBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: "Invalid request payload",
		Code:    http.StatusBadRequest,
		Kind:    string(apperrors.KindValidation),
		Errors:  validator.ParseError(err),
	})
}

// SendPaginated sends a standardized success response for paginated data.
func SendPaginated(c *gin.Context, statusCode int, message string, data interface{}, totalItems int64, currentPage int, pageSize int) {
	if message == "" {
		message = "Data retrieved successfully"
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	c.JSON(statusCode, PaginatedResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Pagination: Pagination{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: currentPage,
			PageSize:    pageSize,
			HasNextPage: currentPage < totalPages,
			HasPrevPage: currentPage > 1,
		},
	})
}

func statusText(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "fail" // server failures vs client errors
	}
	return "error"
}
