package services

import (
	"context"
	"errors"
	"testing"

	"github.com/justsurfingit/jobboard/internal/database"
	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/justsurfingit/jobboard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func signup(role string) form.Data {
	return form.Empty().
		With(form.FieldRole, role).
		With(form.FieldFirstName, " Ada ").
		With(form.FieldLastName, "Lovelace").
		With(form.FieldEmail, "Ada@Example.com").
		With(form.FieldPassword, "Aa1aaaaa").
		With(form.FieldConfirmPassword, "Aa1aaaaa").
		With(form.FieldPhone, "+44 20 7946 0958").
		With(form.FieldCity, "London").
		With(form.FieldCountry, "United Kingdom").
		With(form.FieldYearsExperience, "12").
		With(form.FieldSkills, "Go,  SQL,,go")
}

func TestRegisterCandidate(t *testing.T) {
	db := openTestDB(t)
	svc := NewRegistrationService(db)
	data := signup(form.RoleCandidate).With(form.FieldResume, &form.File{
		Name: "cv.pdf", Size: 4, MediaType: "application/pdf", Content: []byte("%PDF"),
	})

	require.NoError(t, svc.Register(context.Background(), data))

	var user models.User
	require.NoError(t, db.Preload("Resume").First(&user).Error)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, form.RoleCandidate, user.Role)
	assert.Equal(t, 12, user.YearsExperience)
	assert.Equal(t, "Go, SQL", user.Skills)
	assert.Nil(t, user.CompanyID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Aa1aaaaa")))

	require.NotNil(t, user.Resume)
	assert.Equal(t, "cv.pdf", user.Resume.FileName)
	assert.Equal(t, []byte("%PDF"), user.Resume.Content)
}

func TestRegisterEmployerSharesCompany(t *testing.T) {
	db := openTestDB(t)
	svc := NewRegistrationService(db)
	ctx := context.Background()

	first := signup(form.RoleEmployer).With(form.FieldCompanyName, "Initech")
	second := first.With(form.FieldEmail, "peter@initech.example")
	require.NoError(t, svc.Register(ctx, first))
	require.NoError(t, svc.Register(ctx, second))

	var companies []models.Company
	require.NoError(t, db.Preload("Users").Find(&companies).Error)
	require.Len(t, companies, 1)
	assert.Equal(t, "Initech", companies[0].Name)
	assert.Len(t, companies[0].Users, 2)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewRegistrationService(db)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, signup(form.RoleCandidate)))

	err := svc.Register(ctx, signup(form.RoleCandidate).With(form.FieldEmail, "ada@example.com "))
	assert.ErrorIs(t, err, ErrEmailTaken)

	var fieldErr *wizard.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, form.FieldEmail, fieldErr.Field)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestParseYears(t *testing.T) {
	assert.Equal(t, 3, parseYears(" 3 "))
	assert.Equal(t, 0, parseYears("three"))
	assert.Equal(t, 0, parseYears("-2"))
}
