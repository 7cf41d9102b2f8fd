package controllers

import (
	"fmt"
	"net/http"
	"time"

	"jobtract-backend/config"
	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
)

type RecentExpense struct {
	Description string  `json:"description"`
	Vendor      string  `json:"vendor"`
	Total       float64 `json:"total"`
	When        string  `json:"when"` // e.g. "Today", "Yesterday", "3 days ago"
}

type MaintenanceDue struct {
	Name string `json:"name"`
	Date string `json:"date"` // e.g. "Overdue", "Today", "3 days"
}

func GetDashboardOverview(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	// Active Projects
	var activeProjects int64
	config.DB.Model(&models.Project{}).
		Where("user_id = ? AND status IN ? AND deleted_at IS NULL", userID, []string{"Planned", "In Progress"}).
		Count(&activeProjects)

	// Equipment count
	var totalEquipment int64
	config.DB.Model(&models.Equipment{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&totalEquipment)

	// This Month's Expenses
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyExpenses float64
	config.DB.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date >= ? AND deleted_at IS NULL", userID, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyExpenses)

	// Pending Quotes
	var pendingQuotes int64
	config.DB.Model(&models.Quote{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, "Pending").
		Count(&pendingQuotes)

	// Outstanding Invoices
	var outstandingInvoices int64
	var outstandingAmount float64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND payment_status != ? AND deleted_at IS NULL", userID, "paid").
		Count(&outstandingInvoices)
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND payment_status != ? AND deleted_at IS NULL", userID, "paid").
		Select("COALESCE(SUM(total - paid_amount), 0)").Scan(&outstandingAmount)

	// Active tank deposits held against clients
	var activeDeposits float64
	config.DB.Model(&models.TankDeposit{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, "Active").
		Select("COALESCE(SUM(amount), 0)").Scan(&activeDeposits)

	// Recent Expenses (last 5)
	var recent []models.Expense
	config.DB.Where("user_id = ?", userID).
		Order("expense_date DESC NULLS LAST").
		Limit(5).
		Find(&recent)

	recentExpenses := make([]RecentExpense, 0, len(recent))
	for _, e := range recent {
		when := ""
		if e.ExpenseDate != nil {
			daysAgo := int(time.Since(*e.ExpenseDate).Hours() / 24)
			switch daysAgo {
			case 0:
				when = "Today"
			case 1:
				when = "Yesterday"
			default:
				when = fmt.Sprintf("%d days ago", daysAgo)
			}
		}
		recentExpenses = append(recentExpenses, RecentExpense{
			Description: e.Description,
			Vendor:      e.Vendor,
			Total:       e.Total,
			When:        when,
		})
	}

	// Equipment maintenance due within 7 days (or overdue)
	var dueEquipment []models.Equipment
	config.DB.Where("user_id = ? AND next_maintenance IS NOT NULL AND next_maintenance <= ?",
		userID, utils.BeginningOfDay(now).AddDate(0, 0, 7)).
		Order("next_maintenance ASC").
		Limit(7).
		Find(&dueEquipment)

	maintenanceDue := make([]MaintenanceDue, 0, len(dueEquipment))
	today := utils.BeginningOfDay(now)
	for _, eq := range dueEquipment {
		daysUntil := utils.DaysBetween(today, utils.BeginningOfDay(*eq.NextMaintenance))
		var label string
		switch {
		case daysUntil < 0:
			label = "Overdue"
		case daysUntil == 0:
			label = "Today"
		case daysUntil == 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysUntil)
		}
		maintenanceDue = append(maintenanceDue, MaintenanceDue{Name: eq.Name, Date: label})
	}

	c.JSON(http.StatusOK, gin.H{
		"activeProjects":      activeProjects,
		"totalEquipment":      totalEquipment,
		"monthlyExpenses":     monthlyExpenses,
		"pendingQuotes":       pendingQuotes,
		"outstandingInvoices": outstandingInvoices,
		"outstandingAmount":   outstandingAmount,
		"activeDeposits":      activeDeposits,
		"recentExpenses":      recentExpenses,
		"maintenanceDue":      maintenanceDue,
	})
}
