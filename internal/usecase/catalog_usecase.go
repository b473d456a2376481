package usecase

import (
	"fmt"
	"strings"
	"time"

	"sparkz/internal/entity"
	"sparkz/internal/repo/memory"
	"sparkz/pkg/logger"
	"sparkz/pkg/queue"

	"github.com/google/uuid"
)

var ErrProjectNotFound = fmt.Errorf("project not found")

// FieldErrors maps a form field to its validation message, for inline
// reporting next to the offending field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

type AddProjectInput struct {
	Title         string
	Description   string
	Category      entity.Category
	Author        string
	DonationGoal  float64
	RepositoryURL string
	ImageURL      string
}

type CatalogUseCase interface {
	AddProject(input AddProjectInput) (*entity.Project, error)
	GetProject(id string) (*entity.Project, error)
	LikeProject(id string)
	RecordDonation(id string, amount float64)
	Query(category entity.Category, search string) []*entity.Project
	Page(projects []*entity.Project, page, pageSize int) ([]*entity.Project, int)
}

type catalogUseCase struct {
	projectRepo memory.ProjectRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewCatalogUseCase(projectRepo memory.ProjectRepository, queueClient *queue.Client, logger *logger.Logger) CatalogUseCase {
	return &catalogUseCase{
		projectRepo: projectRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

// ValidateProject applies the upload form's field checks.
func ValidateProject(input AddProjectInput) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "El título es obligatorio"
	}
	if strings.TrimSpace(input.Author) == "" {
		errs["author"] = "El autor es obligatorio"
	}
	if input.DonationGoal <= 0 {
		errs["donation_goal"] = "La meta debe ser mayor a 0"
	}
	if strings.TrimSpace(input.Description) == "" {
		errs["description"] = "La descripción no puede estar vacía"
	}
	if !entity.ValidCategory(input.Category) {
		errs["category"] = "La categoría no es válida"
	}
	if input.RepositoryURL != "" &&
		!strings.HasPrefix(input.RepositoryURL, "http://") &&
		!strings.HasPrefix(input.RepositoryURL, "https://") {
		errs["repository_url"] = "La URL debe comenzar con http:// o https://"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (uc *catalogUseCase) AddProject(input AddProjectInput) (*entity.Project, error) {
	if errs := ValidateProject(input); errs != nil {
		return nil, errs
	}

	image := input.ImageURL
	if image == "" {
		image = fmt.Sprintf("https://picsum.photos/800/600?random=%d", time.Now().UnixNano())
	}

	project := &entity.Project{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Author:          input.Author,
		Image:           image,
		DonationGoal:    input.DonationGoal,
		CurrentDonation: 0,
		DownloadCount:   0,
		Likes:           0,
		RepositoryURL:   input.RepositoryURL,
		CreatedAt:       time.Now(),
	}

	if err := uc.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if uc.queueClient != nil {
		go uc.publishNotification(map[string]interface{}{
			"type":       queue.RoutingKeyProjectPublished,
			"project_id": project.ID,
			"title":      project.Title,
			"category":   string(project.Category),
			"priority":   5,
		})
	}

	return project, nil
}

func (uc *catalogUseCase) GetProject(id string) (*entity.Project, error) {
	project, ok := uc.projectRepo.GetByID(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// LikeProject increments the like counter by one. Repeated calls stack;
// an unknown id is a silent no-op.
func (uc *catalogUseCase) LikeProject(id string) {
	uc.projectRepo.Like(id)
}

// RecordDonation commits a donation amount to a project. The platform
// sentinel is acknowledged without touching any project. Amount validation
// belongs to the donation flow, not here.
func (uc *catalogUseCase) RecordDonation(id string, amount float64) {
	if id == entity.PlatformDonationID {
		uc.logger.Info("Gracias por donar %.2f a SPARKZ Platform!", amount)
		if uc.queueClient != nil {
			go uc.publishNotification(map[string]interface{}{
				"type":      queue.RoutingKeyDonationReceived,
				"target_id": entity.PlatformDonationID,
				"amount":    amount,
				"priority":  3,
			})
		}
		return
	}

	if !uc.projectRepo.AddDonation(id, amount) {
		return
	}

	if uc.queueClient != nil {
		go uc.publishNotification(map[string]interface{}{
			"type":      queue.RoutingKeyDonationReceived,
			"target_id": id,
			"amount":    amount,
			"priority":  4,
		})
	}
}

// Query filters the catalog by category and a case-insensitive substring
// match on title or author, preserving insertion order (newest first).
func (uc *catalogUseCase) Query(category entity.Category, search string) []*entity.Project {
	needle := strings.ToLower(search)

	result := make([]*entity.Project, 0)
	for _, p := range uc.projectRepo.List() {
		if category != entity.CategoryAll && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Author), needle) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Page slices a filtered sequence into its 1-indexed page, clipped to the
// sequence bounds, and returns the total page count.
func (uc *catalogUseCase) Page(projects []*entity.Project, page, pageSize int) ([]*entity.Project, int) {
	if pageSize <= 0 || page < 1 {
		return []*entity.Project{}, 0
	}

	totalPages := (len(projects) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(projects) {
		return []*entity.Project{}, totalPages
	}
	end := start + pageSize
	if end > len(projects) {
		end = len(projects)
	}
	return projects[start:end], totalPages
}

func (uc *catalogUseCase) publishNotification(task map[string]interface{}) {
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish notification task: %v (task=%+v)", err, task)
	}
}
