package services

import (
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"territorios/backend/app/models"
	"territorios/backend/app/repo"
	"territorios/backend/global"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	searchLimit     = 10
)

type Stats struct {
	TotalCount        int64 `json:"total_count"`
	DoneRecentlyCount int64 `json:"done_recently_count"`
}

type TerritoryService struct {
	territories *repo.TerritoryRepository
}

func NewTerritoryService(territories *repo.TerritoryRepository) *TerritoryService {
	return &TerritoryService{territories: territories}
}

func (s *TerritoryService) Create(name, description, region string) (*models.Territory, error) {
	if !models.ValidRegion(region) {
		return nil, ErrBadRegion
	}
	t := &models.Territory{
		Name:                name,
		Description:         description,
		Region:              region,
		DoneRecently:        false,
		TimesWhereItWasDone: []string{},
		LeastEditedBy:       []string{},
	}
	return t, s.territories.Create(t)
}

func (s *TerritoryService) GetByID(id uint) (*models.Territory, error) {
	t, err := s.territories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update is the toggle operation: any authenticated user may rewrite the
// description, region and completion-date history. Unparseable date tokens
// are dropped without error; the editor is promoted to the front of the
// recent-editors list.
func (s *TerritoryService) Update(id uint, description, region, datesCsv, editor string) (*models.Territory, error) {
	t, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	times := parseDoneDates(datesCsv)
	t.Description = description
	t.Region = region
	t.TimesWhereItWasDone = times
	t.DoneRecently = anyWithinLastYear(times, time.Now())
	t.LeastEditedBy = promoteEditor(t.LeastEditedBy, editor)
	return t, s.territories.Save(t)
}

func (s *TerritoryService) Delete(id uint) error {
	n, err := s.territories.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List pages through territories in ascending id order. The cursor is opaque
// to callers; an empty next cursor means the listing is exhausted.
// doneRecently filters the page when non-nil.
func (s *TerritoryService) List(cursor string, pageSize int, doneRecently *bool) ([]models.Territory, string, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	afterID, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	// Fetch one extra row to learn whether another page exists.
	rows, err := s.territories.ListPage(afterID, pageSize+1, doneRecently)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		next = encodeCursor(rows[len(rows)-1].ID)
	}
	return rows, next, nil
}

// Search matches the query as a substring of the territory name, capped at
// ten results. An empty query short-circuits without touching the store.
func (s *TerritoryService) Search(q string) ([]models.Territory, error) {
	if q == "" {
		return []models.Territory{}, nil
	}
	return s.territories.SearchByName(q, searchLimit)
}

// Stats recounts recency from the newest history entry through the same
// rule as the write path, rather than trusting the stored flag.
func (s *TerritoryService) Stats() (Stats, error) {
	all, err := s.territories.ListAll()
	if err != nil {
		return Stats{}, err
	}
	now := time.Now()
	st := Stats{TotalCount: int64(len(all))}
	for _, t := range all {
		if len(t.TimesWhereItWasDone) > 0 && withinLastYear(t.TimesWhereItWasDone[0], now) {
			st.DoneRecentlyCount++
		}
	}
	return st, nil
}

func (s *TerritoryService) ListWithEditInfo() ([]models.Territory, error) {
	return s.territories.ListAll()
}

func (s *TerritoryService) Regions() []string { return models.Regions }

func (s *TerritoryService) ListByRegion(region string) ([]models.Territory, error) {
	return s.territories.ListByRegion(region)
}

func (s *TerritoryService) ClearEditors(id uint) error {
	t, err := s.GetByID(id)
	if err != nil {
		return err
	}
	t.LeastEditedBy = []string{}
	return s.territories.Save(t)
}

// ClearOneEditor removes a single named editor, collapsing to an empty list
// when the last one goes.
func (s *TerritoryService) ClearOneEditor(id uint, username string) error {
	t, err := s.GetByID(id)
	if err != nil {
		return err
	}
	kept := []string{}
	for _, e := range t.LeastEditedBy {
		if e != username {
			kept = append(kept, e)
		}
	}
	t.LeastEditedBy = kept
	return s.territories.Save(t)
}

// ClearAllEditors wipes the editors list of every territory. The loop is
// best-effort and non-atomic: a record that fails to save is logged and
// skipped, and only successes are counted.
func (s *TerritoryService) ClearAllEditors() (int, error) {
	all, err := s.territories.ListAll()
	if err != nil {
		return 0, err
	}
	cleared := 0
	for i := range all {
		t := &all[i]
		if len(t.LeastEditedBy) == 0 {
			continue
		}
		t.LeastEditedBy = []string{}
		if err := s.territories.Save(t); err != nil {
			global.Logger.Error().Err(err).Uint("territory_id", t.ID).Msg("clear editors failed")
			continue
		}
		cleared++
	}
	return cleared, nil
}

func encodeCursor(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func decodeCursor(cursor string) (uint, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrBadCursor
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, ErrBadCursor
	}
	return uint(id), nil
}
