package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"territorios/backend/app/models"
	"territorios/backend/app/repo"
	"territorios/backend/app/session"
	"territorios/backend/global"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	global.Logger = zerolog.Nop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Token{}, &models.Territory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newGuard(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repo.NewTokenRepository(newTestDB(t)), session.NewTokenCache(nil))
}

func newTerritories(t *testing.T) *TerritoryService {
	t.Helper()
	return NewTerritoryService(repo.NewTerritoryRepository(newTestDB(t)))
}

func TestLoginBootstrapsFirstAdmin(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	u, first, err := guard.Login(ctx, "abc")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if !first {
		t.Error("expected isFirstUser=true on empty store")
	}
	if u.Role != models.RoleAdmin || u.Username != BootstrapUsername {
		t.Errorf("bootstrap user = %+v", u)
	}

	u2, first2, err := guard.Login(ctx, "abc")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first2 {
		t.Error("second login must not report first user")
	}
	if u2.ID != u.ID {
		t.Errorf("second login returned a different user: %d != %d", u2.ID, u.ID)
	}

	// unknown token after bootstrap
	if _, _, err := guard.Login(ctx, "other"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateAdmin(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	if _, _, err := guard.Login(ctx, "admin-token"); err != nil {
		t.Fatal(err)
	}
	if _, err := guard.CreateUser(ctx, "user-token", "João", models.RoleUser); err != nil {
		t.Fatal(err)
	}

	if _, err := guard.ValidateAdmin(ctx, "admin-token"); err != nil {
		t.Errorf("admin token rejected: %v", err)
	}
	if _, err := guard.ValidateAdmin(ctx, "user-token"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for USER role, got %v", err)
	}
	if _, err := guard.ValidateAdmin(ctx, "missing"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown token, got %v", err)
	}
}

func TestCreateUserConflict(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	if _, _, err := guard.Login(ctx, "admin-token"); err != nil {
		t.Fatal(err)
	}
	if _, err := guard.CreateUser(ctx, "admin-token", "Maria", models.RoleUser); !errors.Is(err, ErrTokenConflict) {
		t.Errorf("expected ErrTokenConflict, got %v", err)
	}
	if _, err := guard.CreateUser(ctx, "fresh", "Maria", ""); err != nil {
		t.Fatalf("create with default role: %v", err)
	}
	u, err := guard.Validate(ctx, "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != models.RoleUser {
		t.Errorf("default role = %q, want USER", u.Role)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	if _, _, err := guard.Login(ctx, "admin-token"); err != nil {
		t.Fatal(err)
	}
	if _, err := guard.CreateUser(ctx, "weird", "Maria", "WIZARD"); !errors.Is(err, ErrBadRole) {
		t.Errorf("expected ErrBadRole, got %v", err)
	}
	if _, err := guard.Validate(ctx, "weird"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("rejected user must not be persisted, got %v", err)
	}
}

func TestUpdateSelfRoleRequiresAdmin(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	admin, _, err := guard.Login(ctx, "admin-token")
	if err != nil {
		t.Fatal(err)
	}
	user, err := guard.CreateUser(ctx, "user-token", "João", models.RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := guard.UpdateSelf(ctx, user, "", models.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Errorf("role change by non-admin: expected ErrForbidden, got %v", err)
	}
	updated, err := guard.UpdateSelf(ctx, user, "João Pedro", "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Username != "João Pedro" {
		t.Errorf("username not updated: %q", updated.Username)
	}
	if updated.Role != models.RoleUser {
		t.Errorf("role changed without permission: %q", updated.Role)
	}

	if _, err := guard.UpdateSelf(ctx, admin, "", "WIZARD"); !errors.Is(err, ErrBadRole) {
		t.Errorf("unknown role: expected ErrBadRole, got %v", err)
	}

	promoted, err := guard.UpdateSelf(ctx, admin, "", models.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if promoted.Role != models.RoleUser {
		t.Errorf("admin self role change failed: %q", promoted.Role)
	}
}

func seedTerritories(t *testing.T, svc *TerritoryService, n int) {
	t.Helper()
	regions := models.Regions
	for i := 0; i < n; i++ {
		name := string(rune('A'+i%26)) + "-quadra"
		if _, err := svc.Create(name, "quadra de teste", regions[i%len(regions)]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestUpdateStoresNormalizedDatesAndEditors(t *testing.T) {
	svc := newTerritories(t)
	created, err := svc.Create("Jardim das Flores", "", "Norte")
	if err != nil {
		t.Fatal(err)
	}

	recent := time.Now().AddDate(0, -2, 0).Format("2006-01-02")
	got, err := svc.Update(created.ID, "atualizado", "Sul", "2023-01-01, invalid, "+recent, "ana")
	if err != nil {
		t.Fatal(err)
	}

	if len(got.TimesWhereItWasDone) != 2 {
		t.Fatalf("expected 2 stored dates, got %v", got.TimesWhereItWasDone)
	}
	if got.TimesWhereItWasDone[1] != "2023-01-01T12:00:00Z" {
		t.Errorf("oldest date = %q", got.TimesWhereItWasDone[1])
	}
	if !got.DoneRecently {
		t.Error("a two-month-old date must mark the territory done recently")
	}
	if got.Description != "atualizado" || got.Region != "Sul" {
		t.Errorf("fields not updated: %+v", got)
	}
	if len(got.LeastEditedBy) != 1 || got.LeastEditedBy[0] != "ana" {
		t.Errorf("editors = %v", got.LeastEditedBy)
	}

	// a second editor lands in front; ana stays
	got, err = svc.Update(created.ID, "de novo", "Sul", recent, "bruno")
	if err != nil {
		t.Fatal(err)
	}
	if got.LeastEditedBy[0] != "bruno" || got.LeastEditedBy[1] != "ana" {
		t.Errorf("editors after second update = %v", got.LeastEditedBy)
	}

	// six distinct editors never exceed the cap
	for _, name := range []string{"carla", "diego", "elisa", "fabio"} {
		if _, err := svc.Update(created.ID, "x", "Sul", recent, name); err != nil {
			t.Fatal(err)
		}
	}
	final, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(final.LeastEditedBy) != 5 {
		t.Errorf("editors list grew past 5: %v", final.LeastEditedBy)
	}
	if final.LeastEditedBy[0] != "fabio" {
		t.Errorf("most recent editor not in front: %v", final.LeastEditedBy)
	}
}

func TestUpdateWithOldDatesClearsDoneRecently(t *testing.T) {
	svc := newTerritories(t)
	created, err := svc.Create("Vila Velha", "", "Leste")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Update(created.ID, "", "Leste", "2020-03-10", "ana")
	if err != nil {
		t.Fatal(err)
	}
	if got.DoneRecently {
		t.Error("a 2020 date must not count as done recently")
	}
	// empty date list resets the flag too
	got, err = svc.Update(created.ID, "", "Leste", "", "ana")
	if err != nil {
		t.Fatal(err)
	}
	if got.DoneRecently || len(got.TimesWhereItWasDone) != 0 {
		t.Errorf("expected empty history, got %+v", got)
	}
}

func TestPaginationTraversalIsComplete(t *testing.T) {
	svc := newTerritories(t)
	seedTerritories(t, svc, 23)

	seen := map[uint]bool{}
	cursor := ""
	pages := 0
	for {
		page, next, err := svc.List(cursor, 5, nil)
		if err != nil {
			t.Fatal(err)
		}
		for _, item := range page {
			if seen[item.ID] {
				t.Fatalf("duplicate id %d during traversal", item.ID)
			}
			seen[item.ID] = true
		}
		pages++
		if next == "" {
			break
		}
		cursor = next
	}
	if len(seen) != 23 {
		t.Errorf("traversal saw %d records, want 23", len(seen))
	}
	if pages != 5 {
		t.Errorf("expected 5 pages of size 5 for 23 rows, got %d", pages)
	}
}

func TestPaginationFilter(t *testing.T) {
	svc := newTerritories(t)
	seedTerritories(t, svc, 6)
	recent := time.Now().Format("2006-01-02")
	if _, err := svc.Update(1, "", "Norte", recent, "ana"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(4, "", "Norte", recent, "ana"); err != nil {
		t.Fatal(err)
	}

	only := true
	page, _, err := svc.List("", 50, &only)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Fatalf("done-recently filter returned %d rows, want 2", len(page))
	}
	only = false
	page, _, err = svc.List("", 50, &only)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 4 {
		t.Fatalf("not-done filter returned %d rows, want 4", len(page))
	}
}

func TestListRejectsGarbageCursor(t *testing.T) {
	svc := newTerritories(t)
	if _, _, err := svc.List("!!!not-base64!!!", 5, nil); !errors.Is(err, ErrBadCursor) {
		t.Errorf("expected ErrBadCursor, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc := newTerritories(t)
	for i := 0; i < 15; i++ {
		name := "Centro Histórico"
		if i > 2 {
			name = "Jardim Paulista"
		}
		if _, err := svc.Create(name, "", "Centro"); err != nil {
			t.Fatal(err)
		}
	}

	// empty search short-circuits
	got, err := svc.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty search returned %d rows", len(got))
	}

	got, err = svc.Search("Histórico")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("substring search returned %d rows, want 3", len(got))
	}

	// capped at ten
	got, err = svc.Search("Jardim")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Errorf("search returned %d rows, want cap of 10", len(got))
	}
}

func TestStatsUsesNewestEntry(t *testing.T) {
	svc := newTerritories(t)
	seedTerritories(t, svc, 4)
	recent := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	if _, err := svc.Update(1, "", "Norte", "2019-05-05, "+recent, "ana"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(2, "", "Norte", "2019-05-05", "ana"); err != nil {
		t.Fatal(err)
	}

	st, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalCount != 4 {
		t.Errorf("total = %d, want 4", st.TotalCount)
	}
	if st.DoneRecentlyCount != 1 {
		t.Errorf("done recently = %d, want 1", st.DoneRecentlyCount)
	}
}

func TestClearEditorsOperations(t *testing.T) {
	svc := newTerritories(t)
	seedTerritories(t, svc, 3)
	recent := time.Now().Format("2006-01-02")
	for id := uint(1); id <= 3; id++ {
		if _, err := svc.Update(id, "", "Norte", recent, "ana"); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Update(id, "", "Norte", recent, "bruno"); err != nil {
			t.Fatal(err)
		}
	}

	if err := svc.ClearOneEditor(1, "ana"); err != nil {
		t.Fatal(err)
	}
	one, _ := svc.GetByID(1)
	if len(one.LeastEditedBy) != 1 || one.LeastEditedBy[0] != "bruno" {
		t.Errorf("after removing ana: %v", one.LeastEditedBy)
	}
	if err := svc.ClearOneEditor(1, "bruno"); err != nil {
		t.Fatal(err)
	}
	one, _ = svc.GetByID(1)
	if len(one.LeastEditedBy) != 0 {
		t.Errorf("expected empty editors, got %v", one.LeastEditedBy)
	}

	if err := svc.ClearEditors(2); err != nil {
		t.Fatal(err)
	}
	two, _ := svc.GetByID(2)
	if len(two.LeastEditedBy) != 0 {
		t.Errorf("clear editors left %v", two.LeastEditedBy)
	}

	// only territory 3 still has editors
	cleared, err := svc.ClearAllEditors()
	if err != nil {
		t.Fatal(err)
	}
	if cleared != 1 {
		t.Errorf("clear all affected %d records, want 1", cleared)
	}
	three, _ := svc.GetByID(3)
	if len(three.LeastEditedBy) != 0 {
		t.Errorf("clear all left %v", three.LeastEditedBy)
	}
}

func TestDeleteAndNotFound(t *testing.T) {
	svc := newTerritories(t)
	created, err := svc.Create("Boa Vista", "", "Oeste")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(999, "", "Sul", "", "ana"); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown id: expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidatesRegion(t *testing.T) {
	svc := newTerritories(t)
	if _, err := svc.Create("X", "", "Atlântida"); !errors.Is(err, ErrBadRegion) {
		t.Errorf("expected ErrBadRegion, got %v", err)
	}
}

func TestListByRegion(t *testing.T) {
	svc := newTerritories(t)
	seedTerritories(t, svc, 10)
	ts, err := svc.ListByRegion("Oeste")
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range ts {
		if item.Region != "Oeste" {
			t.Errorf("region filter leaked %q", item.Region)
		}
	}
	if len(ts) != 2 {
		t.Errorf("expected 2 Oeste territories, got %d", len(ts))
	}
}
