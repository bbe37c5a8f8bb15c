package ipam

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ipmanager/internal/auth"
	"ipmanager/internal/models"
)

var (
	ErrForbidden    = errors.New("admin access required")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("record not found")
	ErrStorage      = errors.New("storage failure")
)

// Store: хранилище записей. Repo работает поверх gorm, в тестах подставляется фейк.
type Store interface {
	List(ctx context.Context) ([]models.IPEntry, error)
	Get(ctx context.Context, id uint) (*models.IPEntry, error)
	Insert(ctx context.Context, e *models.IPEntry) error
	// Update атомарно читает запись, применяет apply и сохраняет. ErrNotFound, если записи нет.
	Update(ctx context.Context, id uint, apply func(*models.IPEntry)) (*models.IPEntry, error)
	// Delete возвращает число удалённых строк; отсутствующий id, не ошибка.
	Delete(ctx context.Context, id uint) (int64, error)
}

// Input: поля записи из запроса. static_ip/machine принимаются как имена второй раскладки клиента.
type Input struct {
	IPAddress   string `json:"ip_address"`
	DeviceName  string `json:"device_name"`
	MACAddress  string `json:"mac_address"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`

	StaticIP string `json:"static_ip"`
	Machine  string `json:"machine"`
}

func (in Input) normalize() Input {
	if in.IPAddress == "" {
		in.IPAddress = in.StaticIP
	}
	if in.DeviceName == "" {
		in.DeviceName = in.Machine
	}
	in.IPAddress = strings.TrimSpace(in.IPAddress)
	in.StaticIP, in.Machine = "", ""
	return in
}

func (in Input) validate() error {
	if in.IPAddress == "" {
		return fmt.Errorf("%w: ip_address is required", ErrInvalidInput)
	}
	return nil
}

// apply перезаписывает все изменяемые поля: пропущенное поле становится пустым.
func (in Input) apply(e *models.IPEntry) {
	e.IPAddress = in.IPAddress
	e.DeviceName = in.DeviceName
	e.MACAddress = in.MACAddress
	e.Description = in.Description
	e.AssignedTo = in.AssignedTo
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service { return &Service{store: s, now: time.Now} }

// stamp: UTC с точностью до микросекунд. Колонки времени объявлены с precision:6.
func (s *Service) stamp() time.Time { return s.now().UTC().Truncate(time.Microsecond) }

// List: без проверки прав. Порядок хранения, затем фильтр.
func (s *Service) List(ctx context.Context, f Filter) ([]models.IPEntry, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return f.Apply(all), nil
}

// Get: одна запись по id, тоже без проверки прав.
func (s *Service) Get(ctx context.Context, id uint) (*models.IPEntry, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, in Input, who auth.Context) (*models.IPEntry, error) {
	if !who.IsAdmin {
		return nil, ErrForbidden
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	ts := s.stamp()
	e := &models.IPEntry{CreatedAt: ts, UpdatedAt: ts}
	in.apply(e)
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, storageErr(err)
	}
	return e, nil
}

// Update: полная замена полей, не патч. last_updated всегда строго растёт.
func (s *Service) Update(ctx context.Context, id uint, in Input, who auth.Context) (*models.IPEntry, error) {
	if !who.IsAdmin {
		return nil, ErrForbidden
	}
	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	e, err := s.store.Update(ctx, id, func(e *models.IPEntry) {
		ts := s.stamp()
		if !ts.After(e.UpdatedAt) {
			ts = e.UpdatedAt.Add(time.Microsecond)
		}
		in.apply(e)
		e.UpdatedAt = ts
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uint, who auth.Context) (int64, error) {
	if !who.IsAdmin {
		return 0, ErrForbidden
	}
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

func storageErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
