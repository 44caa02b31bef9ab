package service

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

// SeedService генерирует фейковые данные для локальной разработки.
type SeedService struct {
	userRepo    *repository.UserRepository
	projectRepo *repository.ProjectRepository
	bidRepo     *repository.BidRepository
}

// NewSeedService создаёт сервис генерации данных.
func NewSeedService(userRepo *repository.UserRepository, projectRepo *repository.ProjectRepository, bidRepo *repository.BidRepository) *SeedService {
	return &SeedService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		bidRepo:     bidRepo,
	}
}

// SeedData генерирует пользователей, проекты и ставки.
func (s *SeedService) SeedData(ctx context.Context, numUsers, numProjects int) error {
	clients, freelancers, err := s.generateUsers(ctx, numUsers)
	if err != nil {
		return fmt.Errorf("seed service: не удалось создать пользователей: %w", err)
	}

	if len(clients) == 0 || len(freelancers) == 0 {
		return fmt.Errorf("seed service: нужны и клиенты, и фрилансеры")
	}

	if err := s.generateProjects(ctx, clients, freelancers, numProjects); err != nil {
		return fmt.Errorf("seed service: не удалось создать проекты: %w", err)
	}

	return nil
}

// generateUsers создаёт фейковых клиентов и фрилансеров.
func (s *SeedService) generateUsers(ctx context.Context, count int) ([]*models.User, []*models.User, error) {
	firstNames := []string{
		"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья",
		"Анна", "Мария", "Елена", "Ольга", "Екатерина", "Юлия", "Анастасия", "Дарья",
	}
	lastNames := []string{
		"Иванов", "Петров", "Смирнов", "Козлов", "Соколов", "Попов", "Лебедев", "Новиков",
		"Морозов", "Волков", "Васильев", "Зайцев", "Павлов", "Семёнов", "Фёдоров", "Белов",
	}
	domains := []string{"gmail.com", "yandex.ru", "mail.ru", "outlook.com"}
	skills := []string{
		"JavaScript", "TypeScript", "React", "Vue.js", "Node.js", "Python", "Go",
		"PostgreSQL", "Docker", "Kubernetes", "Figma", "UI/UX Design", "SEO", "Translation",
	}
	locations := []string{"Москва", "Санкт-Петербург", "Новосибирск", "Казань", "Екатеринбург"}

	passHash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	var clients, freelancers []*models.User

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))])
		user := &models.User{
			Name:         name,
			Email:        fmt.Sprintf("seed_user_%d_%d@%s", i, rand.Intn(100000), domains[rand.Intn(len(domains))]),
			PasswordHash: string(passHash),
			Bio:          "Сгенерированный профиль для разработки",
			Location:     locations[rand.Intn(len(locations))],
		}

		if i%2 == 0 {
			user.Role = models.RoleClient
			user.CompanyName = fmt.Sprintf("ООО Студия %d", rand.Intn(1000))
		} else {
			user.Role = models.RoleFreelancer
			user.HourlyRate = float64(500 + rand.Intn(4500))
			picked := rand.Perm(len(skills))[:3+rand.Intn(3)]
			for _, idx := range picked {
				user.Skills = append(user.Skills, skills[idx])
			}
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, err
		}

		if user.Role == models.RoleClient {
			clients = append(clients, user)
		} else {
			freelancers = append(freelancers, user)
		}
	}

	return clients, freelancers, nil
}

// generateProjects создаёт открытые проекты и ставки на них.
func (s *SeedService) generateProjects(ctx context.Context, clients, freelancers []*models.User, count int) error {
	titles := []string{
		"Разработка интернет-магазина", "Редизайн корпоративного сайта", "Мобильное приложение доставки",
		"Интеграция с платёжным шлюзом", "Настройка CI/CD", "Лендинг для продукта",
		"Парсер каталога товаров", "Чат-бот поддержки", "Панель администратора", "Перевод документации",
	}

	for i := 0; i < count; i++ {
		client := clients[rand.Intn(len(clients))]
		deadline := models.Today()
		deadline = models.NewDate(deadline.Year(), deadline.Month(), deadline.Day()+14+rand.Intn(60))

		project := &models.Project{
			ClientID:    client.ID,
			Title:       titles[rand.Intn(len(titles))],
			Description: "Сгенерированный проект для локальной разработки. Подробное описание задач появится после обсуждения с исполнителем.",
			Budget:      float64(5000 + rand.Intn(195000)),
			Deadline:    deadline,
			Status:      models.ProjectStatusOpen,
		}

		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}

		for j := 0; j < 1+rand.Intn(3); j++ {
			freelancer := freelancers[rand.Intn(len(freelancers))]
			bid := &models.Bid{
				ProjectID:    project.ID,
				FreelancerID: freelancer.ID,
				BidAmount:    project.Budget * (0.7 + rand.Float64()*0.4),
				Proposal:     "Готов взяться за проект, есть опыт похожих задач. Обсудим детали в чате.",
			}
			if err := s.bidRepo.Create(ctx, bid); err != nil {
				return err
			}
		}
	}

	return nil
}
