package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"sentinel-backend/internal/models"
	"sentinel-backend/internal/repository"
)

// In-memory stand-ins for the persistence interfaces.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var users []models.User
	for _, user := range f.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeDeviceRepo struct {
	devices map[string]*models.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*models.Device)}
}

func (f *fakeDeviceRepo) Create(_ context.Context, device *models.Device) error {
	stored := *device
	f.devices[device.DeviceID] = &stored
	return nil
}

func (f *fakeDeviceRepo) FindByID(_ context.Context, deviceID string) (*models.Device, error) {
	device, ok := f.devices[deviceID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *device
	return &copied, nil
}

func (f *fakeDeviceRepo) DeleteByOwner(_ context.Context, userID uint) error {
	for id, device := range f.devices {
		if device.UserID == userID {
			delete(f.devices, id)
		}
	}
	return nil
}

type fakeReadingRepo struct {
	readings []models.Reading
	err      error

	// captured arguments of the last range query
	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeReadingRepo) Insert(_ context.Context, reading models.Reading) (models.Reading, error) {
	if f.err != nil {
		return models.Reading{}, f.err
	}
	f.readings = append(f.readings, reading)
	return reading, nil
}

func (f *fakeReadingRepo) LatestPerDevice(_ context.Context, ownerID uint) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	latest := make(map[string]models.Reading)
	for _, reading := range f.readings {
		if reading.UserID != ownerID {
			continue
		}
		current, ok := latest[reading.DeviceID]
		if !ok || reading.CreatedAt.After(current.CreatedAt) {
			latest[reading.DeviceID] = reading
		}
	}
	var result []models.Reading
	for _, reading := range latest {
		result = append(result, reading)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeReadingRepo) FindByDeviceAndRange(_ context.Context, ownerID uint, deviceID string, start, end time.Time) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastStart = start
	f.lastEnd = end
	var result []models.Reading
	for _, reading := range f.readings {
		if reading.UserID != ownerID || reading.DeviceID != deviceID {
			continue
		}
		// bounds are inclusive
		if reading.CreatedAt.Before(start) || reading.CreatedAt.After(end) {
			continue
		}
		result = append(result, reading)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeReadingRepo) FindAllForOwner(_ context.Context, ownerID uint) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Reading
	for _, reading := range f.readings {
		if reading.UserID == ownerID {
			result = append(result, reading)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeReadingRepo) FindAll(_ context.Context) ([]models.Reading, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Reading(nil), f.readings...), nil
}

type fakeResetStore struct {
	tokens map[string]uint
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: make(map[string]uint)}
}

func (f *fakeResetStore) Save(_ context.Context, token string, userID uint, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetStore) Consume(_ context.Context, token string) (uint, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, repository.ErrNotFound
	}
	delete(f.tokens, token)
	return userID, nil
}

type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 1)}
}

func (f *fakeMailer) SendResetEmail(_ context.Context, to, token string) error {
	f.sent <- token
	return nil
}

var errStoreDown = errors.New("store unreachable")
