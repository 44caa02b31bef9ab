package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/freelance-market/internal/models"
)

// Константы валидации
const (
	MinNameLength           = 2
	MaxNameLength           = 100
	MinProjectTitleLength   = 3
	MaxProjectTitleLength   = 200
	MinProjectDescLength    = 10
	MaxProjectDescLength    = 5000
	MinProposalLength       = 10
	MaxProposalLength       = 2000
	MaxBioLength            = 500
	MaxLocationLength       = 100
	MaxCompanyNameLength    = 200
	MaxSkillLength          = 50
	MaxSkillsCount          = 50
	MinBudget               = 0.0
	MaxBudget               = 100000000.0 // 100 миллионов
	MaxHourlyRate           = 100000.0
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateName проверяет имя пользователя.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("имя обязательно")
	}
	return ValidateLength("имя", strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

// ValidateRole проверяет роль пользователя.
func ValidateRole(role string) error {
	if _, ok := models.ValidRoles[role]; !ok {
		return fmt.Errorf("роль должна быть client, freelancer или admin")
	}
	return nil
}

// ValidateProjectTitle проверяет заголовок проекта.
func ValidateProjectTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок проекта обязателен")
	}
	return ValidateLength("заголовок проекта", strings.TrimSpace(title), MinProjectTitleLength, MaxProjectTitleLength)
}

// ValidateProjectDescription проверяет описание проекта.
func ValidateProjectDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание проекта обязательно")
	}
	return ValidateLength("описание проекта", strings.TrimSpace(description), MinProjectDescLength, MaxProjectDescLength)
}

// ValidateProposal проверяет текст предложения в ставке.
func ValidateProposal(proposal string) error {
	if strings.TrimSpace(proposal) == "" {
		return fmt.Errorf("текст предложения обязателен")
	}
	return ValidateLength("текст предложения", strings.TrimSpace(proposal), MinProposalLength, MaxProposalLength)
}

// ValidateBudget проверяет бюджет проекта.
func ValidateBudget(budget float64) error {
	if budget < MinBudget {
		return fmt.Errorf("бюджет не может быть отрицательным")
	}
	if budget > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateHourlyRate проверяет почасовую ставку.
func ValidateHourlyRate(rate float64) error {
	if rate < 0 {
		return fmt.Errorf("почасовая ставка не может быть отрицательной")
	}
	if rate > MaxHourlyRate {
		return fmt.Errorf("почасовая ставка не может превышать %.0f", MaxHourlyRate)
	}
	return nil
}

// ValidateSkills проверяет массив навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}

	seen := make(map[string]bool)
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return fmt.Errorf("навык не может быть пустым")
		}
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}

		skillLower := strings.ToLower(skill)
		if seen[skillLower] {
			return fmt.Errorf("навык '%s' указан дважды", skill)
		}
		seen[skillLower] = true
	}

	return nil
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return fmt.Errorf("рейтинг должен быть от %d до %d", models.MinRating, models.MaxRating)
	}
	return nil
}

// ValidateFeedback проверяет текст отзыва.
func ValidateFeedback(feedback string) error {
	return ValidateLength("отзыв", feedback, 0, models.MaxFeedbackLength)
}

// ValidateBio проверяет биографию.
func ValidateBio(bio string) error {
	return ValidateLength("биография", strings.TrimSpace(bio), 0, MaxBioLength)
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location string) error {
	return ValidateLength("местоположение", strings.TrimSpace(location), 0, MaxLocationLength)
}

// ValidateDateRange проверяет, что дедлайн позже даты начала
// и дата начала не в прошлом.
func ValidateDateRange(start, deadline models.Date) error {
	today := models.Today()
	if start.Before(today) {
		return fmt.Errorf("дата начала не может быть в прошлом")
	}
	if !deadline.After(start) {
		return fmt.Errorf("дедлайн должен быть позже даты начала")
	}
	return nil
}
