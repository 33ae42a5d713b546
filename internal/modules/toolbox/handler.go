package toolbox

import (
	"errors"
	"net/http"

	"hotelreserve/internal/pkg/primes"
	"hotelreserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	auth    gin.HandlerFunc
}

// NewHandler takes the auth middleware as a parameter: deployed alone the
// service verifies tokens remotely, in tests it can validate them locally.
func NewHandler(service *Service, auth gin.HandlerFunc) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	toolbox := rg.Group("/toolbox")
	toolbox.Use(h.auth)
	{
		toolbox.POST("/bubble-sort", h.BubbleSort)
		toolbox.POST("/quick-sort", h.QuickSort)
		toolbox.POST("/filter-even", h.FilterEven)
		toolbox.POST("/sum-elements", h.Sum)
		toolbox.POST("/max-value", h.Max)
		toolbox.POST("/average", h.Average)
		toolbox.POST("/binary-search", h.BinarySearch)
		toolbox.GET("/primes/:n", h.CheckPrime)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyList):
		response.Error(c, http.StatusBadRequest, "EMPTY_LIST", "List must not be empty")
	case errors.Is(err, ErrNotSorted):
		response.Error(c, http.StatusBadRequest, "NOT_SORTED", "List must be sorted in ascending order")
	case errors.Is(err, primes.ErrBoolOperand):
		response.Error(c, http.StatusBadRequest, "TYPE_ERROR", "Boolean is not a valid operand")
	case errors.Is(err, primes.ErrNotInteger):
		response.Error(c, http.StatusBadRequest, "TYPE_ERROR", "Operand is not an integer")
	case errors.Is(err, primes.ErrNotNumber):
		response.Error(c, http.StatusBadRequest, "TYPE_ERROR", "Operand is not a number")
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	}
}

func bindNumbers(c *gin.Context) ([]float64, bool) {
	var req NumbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return nil, false
	}
	return req.Numbers, true
}

func (h *Handler) BubbleSort(c *gin.Context) {
	numbers, ok := bindNumbers(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"numbers": h.service.BubbleSort(numbers)})
}

func (h *Handler) QuickSort(c *gin.Context) {
	numbers, ok := bindNumbers(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"numbers": h.service.QuickSort(numbers)})
}

func (h *Handler) FilterEven(c *gin.Context) {
	var req FilterEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	response.Success(c, http.StatusOK, h.service.FilterEven(req))
}

func (h *Handler) Sum(c *gin.Context) {
	numbers, ok := bindNumbers(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sum": h.service.Sum(numbers)})
}

func (h *Handler) Max(c *gin.Context) {
	numbers, ok := bindNumbers(c)
	if !ok {
		return
	}

	max, err := h.service.Max(numbers)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"max": max})
}

func (h *Handler) Average(c *gin.Context) {
	numbers, ok := bindNumbers(c)
	if !ok {
		return
	}

	avg, err := h.service.Average(numbers)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"average": avg})
}

func (h *Handler) BinarySearch(c *gin.Context) {
	var req BinarySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.BinarySearch(req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) CheckPrime(c *gin.Context) {
	result, err := h.service.CheckPrime(c.Param("n"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
