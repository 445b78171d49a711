package services

import (
	"context"
	"errors"
	"io"
	"time"

	"eventboard/internal/domain"
)

// fakeTxManager implements domain.TxManager for tests. It hands every
// scope the same fake unit of work and counts commits and rollbacks.
type fakeTxManager struct {
	uow       *fakeUow
	beginErr  error
	commits   int
	rollbacks int
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{uow: newFakeUow()}
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(uow domain.UnitOfWork) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	if err := fn(f.uow); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeUow struct {
	sourceUsers *fakeSourceUserRepo
	users       *fakeUserRepo
	events      *fakeEventRepo
	locations   *fakeLocationRepo
	categories  *fakeCategoryRepo
	tags        *fakeTagRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sourceUsers: &fakeSourceUserRepo{byID: make(map[int64]*domain.SourceUser)},
		users:       newFakeUserRepo(),
		events:      newFakeEventRepo(),
		locations:   &fakeLocationRepo{byID: make(map[int64]*domain.Location)},
		categories:  &fakeCategoryRepo{byID: make(map[int64]*domain.Category)},
		tags:        &fakeTagRepo{byID: make(map[int64]*domain.Tag)},
	}
}

func (f *fakeUow) SourceUsers() domain.SourceUserRepository { return f.sourceUsers }
func (f *fakeUow) Users() domain.UserRepository             { return f.users }
func (f *fakeUow) Events() domain.EventRepository           { return f.events }
func (f *fakeUow) Locations() domain.LocationRepository     { return f.locations }
func (f *fakeUow) Categories() domain.CategoryRepository    { return f.categories }
func (f *fakeUow) Tags() domain.TagRepository               { return f.tags }

// fakeEventRepo implements domain.EventRepository for tests. List
// results and counts are canned; the filter and paging arguments of the
// last call are recorded for assertions.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	summaries []*domain.EventSummary
	total     int
	results   []domain.SearchResult
	err       error

	lastFilter domain.EventDateFilter
	lastOffset int
	lastLimit  int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, ne *domain.NewEvent) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := &domain.Event{
		ID:          int64(len(f.byID) + 1),
		Title:       ne.Title,
		Description: ne.Description,
		Price:       ne.Price,
		URL:         ne.URL,
		LocationID:  ne.LocationID,
		CategoryID:  ne.CategoryID,
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEventRepo) Get(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeEventRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.EventSummary, error) {
	f.lastFilter = domain.EventDateFilter{}
	f.lastOffset, f.lastLimit = offset, limit
	return f.summaries, f.err
}

func (f *fakeEventRepo) CountAll(ctx context.Context) (int, error) {
	return f.total, f.err
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, patch *domain.EventPatch) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) FindByLocation(ctx context.Context, locationID int64, offset, limit int) ([]*domain.EventSummary, error) {
	f.lastOffset, f.lastLimit = offset, limit
	return f.summaries, f.err
}

func (f *fakeEventRepo) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	return f.total, f.err
}

func (f *fakeEventRepo) FindByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]*domain.EventSummary, error) {
	f.lastOffset, f.lastLimit = offset, limit
	return f.summaries, f.err
}

func (f *fakeEventRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	return f.total, f.err
}

func (f *fakeEventRepo) FindByDateFilter(ctx context.Context, filter domain.EventDateFilter, offset, limit int) ([]*domain.EventSummary, error) {
	f.lastFilter = filter
	f.lastOffset, f.lastLimit = offset, limit
	return f.summaries, f.err
}

func (f *fakeEventRepo) CountByDateFilter(ctx context.Context, filter domain.EventDateFilter) (int, error) {
	return f.total, f.err
}

func (f *fakeEventRepo) SearchTitlesAndLocations(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return f.results, f.err
}

func (f *fakeEventRepo) UpdateImage(ctx context.Context, id int64, path string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if path == "" {
		e.EventImage = nil
	} else {
		p := path
		e.EventImage = &p
	}
	return e, nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	favorites map[int64]map[int64]bool
	summaries []*domain.EventSummary
	nextID    int64
	err       error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:      make(map[int64]*domain.User),
		favorites: make(map[int64]map[int64]bool),
		nextID:    1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, f.err
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id int64, path string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if path == "" {
		u.ProfileImage = nil
	} else {
		p := path
		u.ProfileImage = &p
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (f *fakeUserRepo) AddFavorite(ctx context.Context, userID, eventID int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[userID]; !ok {
		return nil
	}
	if f.favorites[userID] == nil {
		f.favorites[userID] = make(map[int64]bool)
	}
	f.favorites[userID][eventID] = true
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(ctx context.Context, userID, eventID int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.favorites[userID], eventID)
	return nil
}

func (f *fakeUserRepo) GetWithFavorites(ctx context.Context, userID int64) (*domain.UserWithFavorites, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[userID]
	if !ok {
		return nil, nil
	}
	return &domain.UserWithFavorites{User: *u, Favorites: f.summaries}, nil
}

type fakeLocationRepo struct {
	byID   map[int64]*domain.Location
	nextID int64
	err    error
}

func (f *fakeLocationRepo) Create(ctx context.Context, l *domain.Location) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	l.ID = f.nextID
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLocationRepo) Get(ctx context.Context, id int64) (*domain.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeLocationRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.Location, error) {
	locations := make([]*domain.Location, 0, len(f.byID))
	for _, l := range f.byID {
		locations = append(locations, l)
	}
	return locations, f.err
}

func (f *fakeLocationRepo) Update(ctx context.Context, id int64, patch *domain.LocationPatch) (*domain.Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	return l, nil
}

func (f *fakeLocationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCategoryRepo struct {
	byID   map[int64]*domain.Category
	nextID int64
	err    error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(f.byID))
	for _, c := range f.byID {
		categories = append(categories, c)
	}
	return categories, f.err
}

func (f *fakeCategoryRepo) Update(ctx context.Context, id int64, patch *domain.CategoryPatch) (*domain.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	return c, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTagRepo struct {
	byID   map[int64]*domain.Tag
	nextID int64
	err    error
}

func (f *fakeTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	t.ID = f.nextID
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTagRepo) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeTagRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.Tag, error) {
	tags := make([]*domain.Tag, 0, len(f.byID))
	for _, t := range f.byID {
		tags = append(tags, t)
	}
	return tags, f.err
}

func (f *fakeTagRepo) Update(ctx context.Context, id int64, patch *domain.TagPatch) (*domain.Tag, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	return t, nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSourceUserRepo struct {
	byID   map[int64]*domain.SourceUser
	nextID int64
	err    error
}

func (f *fakeSourceUserRepo) Create(ctx context.Context, su *domain.SourceUser) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	su.ID = f.nextID
	f.byID[su.ID] = su
	return nil
}

func (f *fakeSourceUserRepo) Get(ctx context.Context, id int64) (*domain.SourceUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeSourceUserRepo) FindAll(ctx context.Context, offset, limit int) ([]*domain.SourceUser, error) {
	sus := make([]*domain.SourceUser, 0, len(f.byID))
	for _, su := range f.byID {
		sus = append(sus, su)
	}
	return sus, f.err
}

func (f *fakeSourceUserRepo) Update(ctx context.Context, id int64, patch *domain.SourceUserPatch) (*domain.SourceUser, error) {
	su, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		su.Name = *patch.Name
	}
	return su, nil
}

func (f *fakeSourceUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	hashErr error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Verify(password, hash string) bool {
	return hash == "hash-"+password
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token", nil
}

// fakeTokenStore implements domain.TokenStore for tests.
type fakeTokenStore struct {
	tokens   map[string]int64
	lastTTL  time.Duration
	storeErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64)}
}

func (f *fakeTokenStore) Store(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.tokens[token] = userID
	f.lastTTL = ttl
	return nil
}

func (f *fakeTokenStore) Check(ctx context.Context, token string) (int64, bool, error) {
	id, ok := f.tokens[token]
	return id, ok, nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// fakeFileStorage implements domain.FileStorage for tests.
type fakeFileStorage struct {
	saved     []string
	removed   []string
	saveErr   error
	removeErr error
}

func (f *fakeFileStorage) Save(r io.Reader, filename, dir string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := dir + "/" + filename
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFileStorage) Remove(path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	return nil
}

var errFake = errors.New("fake failure")
