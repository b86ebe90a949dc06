package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
)

// idFilter adds an equality filter on a uuid column. Malformed ids are
// rejected here so they never reach the database.
func idFilter(c *gin.Context, param, column string, filters []repository.Filter) ([]repository.Filter, error) {
	v := strings.TrimSpace(c.Query(param))
	if v == "" {
		return filters, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, invalidField(param, "must be a valid UUID")
	}
	return append(filters, repository.Eq(column, id.String())), nil
}

// dateRange adds inclusive bounds on a date column from two query parameters.
func dateRange(c *gin.Context, column, fromParam, toParam string) ([]repository.Filter, error) {
	from, err := queryDate(c, fromParam)
	if err != nil {
		return nil, err
	}
	to, err := queryDate(c, toParam)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, invalidField(toParam, "must not be before "+fromParam)
	}
	var filters []repository.Filter
	if !from.IsZero() {
		filters = append(filters, repository.Gte(column, from))
	}
	if !to.IsZero() {
		filters = append(filters, repository.Lte(column, to))
	}
	return filters, nil
}

func patientFilters(c *gin.Context) ([]repository.Filter, error) {
	var filters []repository.Filter
	if v := strings.TrimSpace(c.Query("name")); v != "" {
		filters = append(filters, repository.Contains("name", v))
	}
	if v := c.Query("cpf"); v != "" {
		cpf, err := domain.NormalizeCPF(v)
		if err != nil {
			return nil, invalidField("cpf", err.Error())
		}
		filters = append(filters, repository.Eq("cpf", cpf))
	}
	return filters, nil
}

func clinicalCostFilters(c *gin.Context) ([]repository.Filter, error) {
	filters, err := dateRange(c, "date", "from", "to")
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(c.Query("procedure_name")); v != "" {
		filters = append(filters, repository.Contains("procedure_name", v))
	}
	return filters, nil
}

// fixedAndVariableCostFilters serves both cost kinds; they share the
// nome and data columns.
func fixedAndVariableCostFilters(c *gin.Context) ([]repository.Filter, error) {
	filters, err := dateRange(c, "data", "from", "to")
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(c.Query("nome")); v != "" {
		filters = append(filters, repository.Contains("nome", v))
	}
	return filters, nil
}

func insumoFilters(c *gin.Context) ([]repository.Filter, error) {
	var filters []repository.Filter
	if v := strings.TrimSpace(c.Query("categoria")); v != "" {
		filters = append(filters, repository.Eq("categoria", v))
	}
	if v := strings.TrimSpace(c.Query("nome")); v != "" {
		filters = append(filters, repository.Contains("nome", v))
	}
	return filters, nil
}

func payableFilters(c *gin.Context) ([]repository.Filter, error) {
	filters, err := dateRange(c, "due_date", "due_from", "due_to")
	if err != nil {
		return nil, err
	}
	paid, err := queryBool(c, "paid")
	if err != nil {
		return nil, err
	}
	if paid != nil {
		filters = append(filters, repository.Eq("paid", *paid))
	}
	return filters, nil
}

func receivableFilters(c *gin.Context) ([]repository.Filter, error) {
	filters, err := dateRange(c, "due_date", "due_from", "due_to")
	if err != nil {
		return nil, err
	}
	received, err := queryBool(c, "received")
	if err != nil {
		return nil, err
	}
	if received != nil {
		filters = append(filters, repository.Eq("received", *received))
	}
	return idFilter(c, "patient_id", "patient_id", filters)
}

func userFilters(c *gin.Context) ([]repository.Filter, error) {
	var filters []repository.Filter
	if v := c.Query("role"); v != "" {
		if !domain.IsValidRole(v) {
			return nil, invalidField("role", "invalid role")
		}
		filters = append(filters, repository.Eq("role", v))
	}
	return filters, nil
}

func planModuleFilters(c *gin.Context) ([]repository.Filter, error) {
	filters, err := idFilter(c, "plan_id", "plan_id", nil)
	if err != nil {
		return nil, err
	}
	return idFilter(c, "module_id", "module_id", filters)
}
