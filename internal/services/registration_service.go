package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/justsurfingit/jobboard/internal/wizard"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already registered")

type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{
		DB: db,
	}
}

// Register creates the account described by a completed signup wizard.
func (s *RegistrationService) Register(ctx context.Context, data form.Data) error {
	email := strings.ToLower(strings.TrimSpace(data.Get(form.FieldEmail)))
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Get(form.FieldPassword)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:           email,
		PasswordHash:    string(hash),
		Role:            data.Get(form.FieldRole),
		FirstName:       strings.TrimSpace(data.Get(form.FieldFirstName)),
		LastName:        strings.TrimSpace(data.Get(form.FieldLastName)),
		Phone:           strings.TrimSpace(data.Get(form.FieldPhone)),
		City:            strings.TrimSpace(data.Get(form.FieldCity)),
		Country:         strings.TrimSpace(data.Get(form.FieldCountry)),
		LinkedInURL:     strings.TrimSpace(data.Get(form.FieldLinkedInURL)),
		Headline:        strings.TrimSpace(data.Get(form.FieldHeadline)),
		CurrentTitle:    strings.TrimSpace(data.Get(form.FieldCurrentTitle)),
		YearsExperience: parseYears(data.Get(form.FieldYearsExperience)),
		Skills:          normalizeSkills(data.Get(form.FieldSkills)),
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return &wizard.FieldError{
				Field:   form.FieldEmail,
				Message: "An account with this email already exists",
				Err:     ErrEmailTaken,
			}
		}

		// Employers are linked to their company, created on first signup
		companyName := strings.TrimSpace(data.Get(form.FieldCompanyName))
		if user.Role == form.RoleEmployer && companyName != "" {
			var company models.Company
			err := tx.Where(models.Company{Name: companyName}).
				FirstOrCreate(&company).Error
			if err != nil {
				return fmt.Errorf("find or create company: %w", err)
			}
			user.CompanyID = &company.ID
		}

		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if data.Resume != nil {
			resume := &models.Resume{
				UserID:    user.ID,
				FileName:  data.Resume.Name,
				MediaType: data.Resume.MediaType,
				SizeBytes: data.Resume.Size,
				Content:   data.Resume.Content,
			}
			if err := tx.Create(resume).Error; err != nil {
				return fmt.Errorf("store resume: %w", err)
			}
		}
		return nil
	})
}

func parseYears(raw string) int {
	years, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || years < 0 {
		return 0
	}
	return years
}

// normalizeSkills turns "Go,  SQL,,go" into "Go, SQL".
func normalizeSkills(raw string) string {
	seen := map[string]bool{}
	var skills []string
	for _, skill := range strings.Split(raw, ",") {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}
	return strings.Join(skills, ", ")
}
