package validation

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-market/internal/models"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"user.name+tag@sub.domain.org",
		"a@b.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"@example.com",
		"user@",
		"user@domain",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(models.RoleClient))
	assert.NoError(t, ValidateRole(models.RoleFreelancer))
	assert.NoError(t, ValidateRole(models.RoleAdmin))
	assert.Error(t, ValidateRole("superuser"))
	assert.Error(t, ValidateRole(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password1"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}

func TestValidateSkills(t *testing.T) {
	assert.NoError(t, ValidateSkills(nil))
	assert.NoError(t, ValidateSkills([]string{"Go", "PostgreSQL"}))

	// Дубликаты не зависят от регистра.
	assert.Error(t, ValidateSkills([]string{"go", "Go"}))
	assert.Error(t, ValidateSkills([]string{"go", ""}))
	assert.Error(t, ValidateSkills([]string{strings.Repeat("x", MaxSkillLength+1)}))

	tooMany := make([]string, MaxSkillsCount+1)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("skill-%d", i)
	}
	assert.Error(t, ValidateSkills(tooMany))
}

func TestValidateRating(t *testing.T) {
	assert.Error(t, ValidateRating(0))
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(6))
}

func TestValidateFeedback(t *testing.T) {
	assert.NoError(t, ValidateFeedback(""))
	assert.NoError(t, ValidateFeedback(strings.Repeat("a", models.MaxFeedbackLength)))
	assert.Error(t, ValidateFeedback(strings.Repeat("a", models.MaxFeedbackLength+1)))
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, ValidateBudget(0))
	assert.NoError(t, ValidateBudget(500))
	assert.Error(t, ValidateBudget(-1))
	assert.Error(t, ValidateBudget(MaxBudget+1))
}

func TestValidateDateRange(t *testing.T) {
	today := models.Today()
	tomorrow := models.Date{Time: today.Time.AddDate(0, 0, 1)}
	yesterday := models.Date{Time: today.Time.AddDate(0, 0, -1)}
	nextWeek := models.Date{Time: today.Time.Add(7 * 24 * time.Hour)}

	assert.NoError(t, ValidateDateRange(today, tomorrow))
	assert.NoError(t, ValidateDateRange(tomorrow, nextWeek))

	// Дата начала в прошлом.
	assert.Error(t, ValidateDateRange(yesterday, tomorrow))
	// Дедлайн не позже начала.
	assert.Error(t, ValidateDateRange(tomorrow, tomorrow))
	assert.Error(t, ValidateDateRange(nextWeek, tomorrow))
}
