package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"user-account-service/internal/models"
	"user-account-service/internal/service"
	"user-account-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves CSV/XLSX downloads of the user directory.
type ExportHandler struct {
	Service *service.AuthService
}

func NewExportHandler(svc *service.AuthService) *ExportHandler {
	return &ExportHandler{Service: svc}
}

var exportHeaders = []string{"ID", "Username", "Email", "DNI", "Created", "Roles"}

// roleNames joins a user's role names for a single export cell.
func roleNames(roles []models.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// ExportCSV streams the user directory as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	users, err := h.Service.AllUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"users_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel detects the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, u := range users {
		writer.Write([]string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Username,
			u.Email,
			u.DNI,
			u.CreateTime.Format("2006-01-02"),
			roleNames(u.Roles),
		})
	}
}

// ExportXLSX streams the user directory as an XLSX workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	users, err := h.Service.AllUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, u := range users {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), u.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), u.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), u.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), u.DNI)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), u.CreateTime.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), roleNames(u.Roles))
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "C", 24)
	f.SetColWidth(sheetName, "D", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"users_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
