package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/droneflow/settlements/internal/http/middleware"
	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/service"
)

// StatementGenerator renders a settled month as a PDF statement.
type StatementGenerator interface {
	Generate(month model.ClosedMonth) ([]byte, error)
}

// ReportGenerator renders a settled month as an Excel workbook.
type ReportGenerator interface {
	Generate(month model.ClosedMonth) ([]byte, error)
}

type Handler struct {
	settlements *service.SettlementService
	pdf         StatementGenerator
	excel       ReportGenerator
	log         zerolog.Logger
}

func NewHandler(settlements *service.SettlementService, pdf StatementGenerator, excel ReportGenerator, log zerolog.Logger) *Handler {
	return &Handler{settlements: settlements, pdf: pdf, excel: excel, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	api.Use(authMiddleware)

	api.GET("/dashboard", h.dashboard)

	api.GET("/months/:year/:month", h.computeMonth)
	api.POST("/months/:year/:month/close", h.closeMonth)
	api.POST("/months/reopen", h.reopenMonth)
	api.GET("/months/closed", h.listClosedMonths)
	api.GET("/months/closed/:year/:month/pdf", h.closedMonthPDF)
	api.GET("/months/closed/:year/:month/excel", h.closedMonthExcel)

	api.GET("/services", h.listServices)
	api.POST("/services", h.recordService)
	api.DELETE("/services/:id", h.deleteService)

	api.GET("/expenses", h.listExpenses)
	api.POST("/expenses", h.addExpense)
	api.DELETE("/expenses/:id", h.deleteExpense)

	api.GET("/contributions", h.listContributions)
	api.POST("/contributions", h.addContribution)
	api.DELETE("/contributions/:id", h.removeContribution)

	api.GET("/partners/balances", h.partnerBalances)

	api.GET("/clients", h.listClients)
	api.PUT("/clients", h.saveClients)
	api.DELETE("/clients/:id", h.deleteClient)
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.settlements.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) computeMonth(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}
	calc, err := h.settlements.ComputeMonth(c.Request.Context(), month, year)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"monthYear":     calc.Aggregate.Key.String(),
		"label":         calc.Aggregate.Label,
		"totalRevenue":  calc.Aggregate.TotalRevenue,
		"totalExpenses": calc.Aggregate.TotalExpenses,
		"hectares":      calc.Aggregate.Hectares,
		"services":      calc.Aggregate.Services,
		"expenses":      calc.Aggregate.Expenses,
		"summaries":     calc.Summaries,
	})
}

func (h *Handler) closeMonth(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}
	principal, _ := middleware.MustPrincipal(c)
	closed, err := h.settlements.CloseMonth(c.Request.Context(), month, year)
	if err != nil {
		var partial *service.PartialSettlementError
		if errors.As(err, &partial) {
			h.log.Error().Err(err).Str("month_year", partial.MonthYear).Msg("partial settlement")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "month closed but expenses were not locked",
				"monthYear": partial.MonthYear,
				"closed":    closed,
			})
			return
		}
		h.handleError(c, err)
		return
	}
	h.log.Info().
		Str("month_year", closed.MonthYear).
		Str("closed_by", principal.Name).
		Msg("month settled")
	c.JSON(http.StatusCreated, closed)
}

type reopenRequest struct {
	MonthYear string `json:"month_year" binding:"required"`
}

func (h *Handler) reopenMonth(c *gin.Context) {
	var req reopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, _ := middleware.MustPrincipal(c)
	if err := h.settlements.ReopenMonth(c.Request.Context(), req.MonthYear); err != nil {
		h.handleError(c, err)
		return
	}
	h.log.Info().
		Str("month_year", req.MonthYear).
		Str("reopened_by", principal.Name).
		Msg("month reopened")
	c.Status(http.StatusNoContent)
}

func (h *Handler) listClosedMonths(c *gin.Context) {
	months, err := h.settlements.ListClosedMonths(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, months)
}

func (h *Handler) closedMonthPDF(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}
	closed, err := h.settlements.GetClosedMonth(c.Request.Context(), strconv.Itoa(month)+"/"+strconv.Itoa(year))
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.pdf.Generate(*closed)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := exportFileName("fechamento", closed.MonthYear, "pdf")
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) closedMonthExcel(c *gin.Context) {
	month, year, ok := monthYearParams(c)
	if !ok {
		return
	}
	closed, err := h.settlements.GetClosedMonth(c.Request.Context(), strconv.Itoa(month)+"/"+strconv.Itoa(year))
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.excel.Generate(*closed)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := exportFileName("relatorio", closed.MonthYear, "xlsx")
	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, content)
}

func (h *Handler) listServices(c *gin.Context) {
	services, err := h.settlements.ListServices(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

type recordServiceRequest struct {
	Date      string  `json:"date" binding:"required"`
	ClientID  string  `json:"clientId" binding:"required"`
	AreaID    string  `json:"areaId" binding:"required"`
	Hectares  float64 `json:"hectares" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
}

func (h *Handler) recordService(c *gin.Context) {
	var req recordServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clientId"})
		return
	}
	areaID, err := uuid.Parse(strings.TrimSpace(req.AreaID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid areaId"})
		return
	}

	saved, err := h.settlements.RecordService(c.Request.Context(), service.RecordServiceInput{
		Date:      date,
		ClientID:  clientID,
		AreaID:    areaID,
		Hectares:  req.Hectares,
		Type:      model.ApplicationType(strings.ToUpper(strings.TrimSpace(req.Type))),
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) deleteService(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.settlements.DeleteService(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.settlements.ListExpenses(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

type addExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category"`
	Date        string  `json:"date" binding:"required"`
	PaidBy      string  `json:"paidBy"`
}

func (h *Handler) addExpense(c *gin.Context) {
	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	saved, err := h.settlements.AddExpense(c.Request.Context(), service.AddExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		PaidBy:      strings.TrimSpace(req.PaidBy),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) deleteExpense(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.settlements.DeleteExpense(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listContributions(c *gin.Context) {
	contributions, err := h.settlements.ListContributions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

type addContributionRequest struct {
	PartnerName string  `json:"partnerName" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Notes       string  `json:"notes"`
}

func (h *Handler) addContribution(c *gin.Context) {
	var req addContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	saved, err := h.settlements.AddContribution(c.Request.Context(), service.AddContributionInput{
		PartnerName: strings.TrimSpace(req.PartnerName),
		Amount:      req.Amount,
		Date:        date,
		Notes:       req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) removeContribution(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.settlements.RemoveContribution(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) partnerBalances(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = parsed
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = parsed
	}

	balances, err := h.settlements.PartnerBalances(c.Request.Context(), month, year)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.settlements.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) saveClients(c *gin.Context) {
	var clients []model.Client
	if err := c.ShouldBindJSON(&clients); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settlements.SaveClients(c.Request.Context(), clients); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.settlements.DeleteClient(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func monthYearParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return month, year, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func exportFileName(prefix, monthYear, extension string) string {
	return prefix + "-" + strings.ReplaceAll(monthYear, "/", "-") + "." + extension
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
