// controllers/project.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"jobtract-backend/config"
	"jobtract-backend/models"
	"jobtract-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateProjectInput struct {
	Name           string     `json:"name" binding:"required"`
	Client         string     `json:"client"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Budget         float64    `json:"budget" binding:"min=0"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	ProjectManager string     `json:"projectManager"`
	PhotoPath      string     `json:"photoPath"`
	Notes          string     `json:"notes"`
}

type UpdateProjectInput struct {
	Name           *string    `json:"name"`
	Client         *string    `json:"client"`
	Status         *string    `json:"status"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Budget         *float64   `json:"budget" binding:"omitempty,min=0"`
	Spent          *float64   `json:"spent" binding:"omitempty,min=0"`
	Progress       *int       `json:"progress" binding:"omitempty,min=0,max=100"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	ProjectManager *string    `json:"projectManager"`
	PhotoPath      *string    `json:"photoPath"`
	Notes          *string    `json:"notes"`
}

// CreateProject creates a new project.
func CreateProject(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := input.Status
	if status == "" {
		status = "Planned"
	}

	project := models.Project{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           input.Name,
		Client:         input.Client,
		Status:         status,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Budget:         input.Budget,
		Description:    input.Description,
		Location:       input.Location,
		ProjectManager: input.ProjectManager,
		PhotoPath:      input.PhotoPath,
		Notes:          input.Notes,
	}

	if err := config.DB.Create(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects retrieves all projects for the user.
func GetProjects(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var projects []models.Project
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject retrieves a specific project by ID.
func GetProject(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	projectUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	var project models.Project
	if err := config.DB.Where("user_id = ? AND id = ?", userID, projectUUID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates an existing project.
func UpdateProject(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	projectUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	var input UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var project models.Project
	if err := config.DB.Where("user_id = ? AND id = ?", userID, projectUUID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Client != nil {
		project.Client = *input.Client
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.Spent != nil {
		project.Spent = *input.Spent
	}
	if input.Progress != nil {
		project.Progress = *input.Progress
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Location != nil {
		project.Location = *input.Location
	}
	if input.ProjectManager != nil {
		project.ProjectManager = *input.ProjectManager
	}
	if input.PhotoPath != nil {
		project.PhotoPath = *input.PhotoPath
	}
	if input.Notes != nil {
		project.Notes = *input.Notes
	}

	if err := config.DB.Save(&project).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject soft deletes a project.
func DeleteProject(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	projectUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid project ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, projectUUID).
		Delete(&models.Project{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
