package serviceImp

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"krishi/entities"
	"krishi/pkg/backend"
	"krishi/pkg/backend/repository"
	svc "krishi/pkg/backend/service"
)

type service struct {
	repo repository.Repo

	mu  sync.Mutex
	rnd *rand.Rand
}

// New builds the service. rnd drives every simulated value; pass a seeded
// source for reproducible output.
func New(r repository.Repo, rnd *rand.Rand) svc.Service {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &service{repo: r, rnd: rnd}
}

func (s *service) float(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rnd.Float64()*(max-min)
}

func (s *service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *service) CreateUser(in entities.NewUser) (*entities.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" {
		return nil, svc.MissingField("username")
	}
	if email == "" {
		return nil, svc.MissingField("email")
	}
	taken, err := s.repo.UserTaken(username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, svc.ErrUsernameTaken
	}
	lang := in.LanguagePreference
	if lang == "" {
		lang = "english"
	}
	u := &backend.User{
		Username:           username,
		Email:              email,
		FullName:           in.FullName,
		Phone:              in.Phone,
		Location:           in.Location,
		FarmSize:           in.FarmSize,
		PrimaryCrops:       in.PrimaryCrops,
		LanguagePreference: lang,
	}
	if err := s.repo.CreateUser(u); err != nil {
		return nil, err
	}
	out := u.Entity()
	return &out, nil
}

func (s *service) ListPosts(q svc.PostQuery) ([]entities.CommunityPost, error) {
	page, per := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if per < 1 || per > 100 {
		per = 10
	}
	rows, err := s.repo.ListPosts(q.Language, per, (page-1)*per)
	if err != nil {
		return nil, err
	}
	out := make([]entities.CommunityPost, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.Entity())
	}
	return out, nil
}

func (s *service) CreatePost(in svc.PostRequest) (*entities.CommunityPost, error) {
	if in.UserID <= 0 {
		return nil, svc.MissingField("user_id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, svc.MissingField("title")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, svc.MissingField("content")
	}
	lang := in.Language
	if lang == "" {
		lang = "english"
	}
	p := &backend.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Language: lang,
	}
	if err := s.repo.CreatePost(p); err != nil {
		return nil, err
	}
	out := p.Entity()
	return &out, nil
}

func (s *service) LikePost(id int64) (int, error) {
	n, err := s.repo.LikePost(id)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, svc.ErrNotFound
	}
	return n, err
}
