package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"study_webapp/internal/domain"
	"study_webapp/internal/repository"
	"study_webapp/internal/service"
)

func applyMigrationsToPool(t *testing.T, dbp *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		if !strings.HasSuffix(f.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := dbp.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setupShop(t *testing.T) (*pgxpool.Pool, *service.ShopService, *repository.StatsRepository) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(dbp.Close)

	applyMigrationsToPool(t, dbp)

	return dbp, service.NewShopService(repository.NewShopRepository(dbp)), repository.NewStatsRepository(dbp)
}

func createShopUser(t *testing.T, dbp *pgxpool.Pool, stats *repository.StatsRepository, coins int) *domain.User {
	t.Helper()
	users := repository.NewUserRepository(dbp)
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	u := &domain.User{
		Username:     fmt.Sprintf("shoptest%d", suffix),
		Email:        fmt.Sprintf("shoptest%d@example.com", suffix),
		PasswordHash: "x",
		Language:     "es",
	}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// overwrite the default balance with the test amount
	if _, err := dbp.Exec(ctx,
		`UPDATE user_stats SET coins = $1 WHERE user_id = $2`, coins, u.ID,
	); err != nil {
		t.Fatalf("set coins: %v", err)
	}
	return u
}

func pickItem(t *testing.T, svc *service.ShopService, category domain.ItemCategory, minCost int) domain.Item {
	t.Helper()
	items, err := svc.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	for _, it := range items {
		if it.Category == category && it.Cost >= minCost {
			return it
		}
	}
	t.Fatalf("no %s item with cost >= %d in catalog", category, minCost)
	return domain.Item{}
}

func TestPurchaseAndEquipFlow(t *testing.T) {
	dbp, svc, stats := setupShop(t)
	user := createShopUser(t, dbp, stats, 1000)
	ctx := context.Background()

	item := pickItem(t, svc, domain.CategoryAvatar, 1)

	result, err := svc.Purchase(ctx, user.ID, item.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.RemainingCoins != 1000-item.Cost {
		t.Fatalf("remaining = %d, want %d", result.RemainingCoins, 1000-item.Cost)
	}

	// double purchase is rejected and the balance stays put
	if _, err := svc.Purchase(ctx, user.ID, item.ID); err != domain.ErrAlreadyOwned {
		t.Fatalf("second purchase err = %v, want ErrAlreadyOwned", err)
	}
	s, err := stats.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.Coins != 1000-item.Cost {
		t.Fatalf("coins after rejected purchase = %d, want %d", s.Coins, 1000-item.Cost)
	}

	if err := svc.Equip(ctx, user.ID, item.ID); err != nil {
		t.Fatalf("equip: %v", err)
	}

	state, err := svc.GetShopState(ctx, user.ID)
	if err != nil {
		t.Fatalf("shop state: %v", err)
	}
	if state.EquippedAvatarID == nil || *state.EquippedAvatarID != item.ID {
		t.Fatalf("equipped avatar = %v, want %d", state.EquippedAvatarID, item.ID)
	}

	// professor config follows the equip
	cfg, err := repository.NewProfileConfigRepository(dbp).Get(ctx, user.ID)
	if err != nil || cfg == nil {
		t.Fatalf("get professor config: %v", err)
	}
	if cfg.AvatarItemID == nil || *cfg.AvatarItemID != item.ID {
		t.Fatalf("professor avatar = %v, want %d", cfg.AvatarItemID, item.ID)
	}
}

func TestEquipOnePerCategory(t *testing.T) {
	dbp, svc, stats := setupShop(t)
	user := createShopUser(t, dbp, stats, 10000)
	ctx := context.Background()

	items, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	var avatars []domain.Item
	for _, it := range items {
		if it.Category == domain.CategoryAvatar {
			avatars = append(avatars, it)
		}
	}
	if len(avatars) < 2 {
		t.Skip("catalog has fewer than two avatars")
	}

	for _, it := range avatars[:2] {
		if _, err := svc.Purchase(ctx, user.ID, it.ID); err != nil {
			t.Fatalf("purchase %d: %v", it.ID, err)
		}
		if err := svc.Equip(ctx, user.ID, it.ID); err != nil {
			t.Fatalf("equip %d: %v", it.ID, err)
		}
	}

	var equippedCount int
	err = dbp.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_inventory ui
		JOIN store_items si ON si.id = ui.item_id
		WHERE ui.user_id = $1 AND si.category = 'avatar' AND ui.is_equipped`,
		user.ID,
	).Scan(&equippedCount)
	if err != nil {
		t.Fatalf("count equipped: %v", err)
	}
	if equippedCount != 1 {
		t.Fatalf("equipped avatars = %d, want exactly 1", equippedCount)
	}
}

func TestConcurrentPurchaseNeverOverspends(t *testing.T) {
	dbp, svc, stats := setupShop(t)

	item := pickItem(t, svc, domain.CategoryStreakShield, 1)
	// enough for exactly one purchase
	user := createShopUser(t, dbp, stats, item.Cost+item.Cost/2)
	ctx := context.Background()

	const attempts = 6
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(ctx, user.ID, item.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("successful purchases = %d, want 1", successes)
	}

	s, err := stats.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if want := item.Cost / 2; s.Coins != want {
		t.Fatalf("coins = %d, want %d", s.Coins, want)
	}
	if !s.HasStreakShield {
		t.Fatal("shield flag not set after purchase")
	}

	var rows int
	if err := dbp.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_inventory WHERE user_id = $1 AND item_id = $2`,
		user.ID, item.ID,
	).Scan(&rows); err != nil {
		t.Fatalf("count inventory: %v", err)
	}
	if rows != 1 {
		t.Fatalf("inventory rows = %d, want 1", rows)
	}
}

// The remaining balance a winning purchase reports must be the balance its
// own deduct committed, not a value computed from a read that a concurrent
// purchase may have outdated. The budget covers exactly two shield
// repurchases, so the two winners must report the two ledger states in
// between, whatever order the transactions land in.
func TestConcurrentPurchasesReportCommittedBalance(t *testing.T) {
	dbp, svc, stats := setupShop(t)

	item := pickItem(t, svc, domain.CategoryStreakShield, 1)
	user := createShopUser(t, dbp, stats, 2*item.Cost+item.Cost/2)
	ctx := context.Background()

	const attempts = 6
	var wg sync.WaitGroup
	results := make(chan *domain.PurchaseResult, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res, err := svc.Purchase(ctx, user.ID, item.ID); err == nil {
				results <- res
			}
		}()
	}
	wg.Wait()
	close(results)

	var reported []int
	for res := range results {
		reported = append(reported, res.RemainingCoins)
	}
	sort.Ints(reported)

	want := []int{item.Cost / 2, item.Cost + item.Cost/2}
	if len(reported) != len(want) {
		t.Fatalf("successful purchases = %d, want %d", len(reported), len(want))
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Fatalf("reported remaining balances = %v, want %v", reported, want)
		}
	}

	s, err := stats.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if s.Coins != item.Cost/2 {
		t.Fatalf("final coins = %d, want %d", s.Coins, item.Cost/2)
	}
}

// If the ownership row disappears between the service's check and the
// equip transaction, the transaction must roll back whole and leave the
// previous equip state untouched.
func TestEquipAbortsWhenOwnershipRowGone(t *testing.T) {
	dbp, svc, stats := setupShop(t)
	user := createShopUser(t, dbp, stats, 10000)
	ctx := context.Background()

	items, err := svc.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	var avatars []domain.Item
	for _, it := range items {
		if it.Category == domain.CategoryAvatar {
			avatars = append(avatars, it)
		}
	}
	if len(avatars) < 2 {
		t.Skip("catalog has fewer than two avatars")
	}
	kept, lost := avatars[0], avatars[1]

	for _, it := range []domain.Item{kept, lost} {
		if _, err := svc.Purchase(ctx, user.ID, it.ID); err != nil {
			t.Fatalf("purchase %d: %v", it.ID, err)
		}
	}
	if err := svc.Equip(ctx, user.ID, kept.ID); err != nil {
		t.Fatalf("equip: %v", err)
	}

	if _, err := dbp.Exec(ctx,
		`DELETE FROM user_inventory WHERE user_id = $1 AND item_id = $2`,
		user.ID, lost.ID,
	); err != nil {
		t.Fatalf("remove ownership row: %v", err)
	}

	shopRepo := repository.NewShopRepository(dbp)
	if err := shopRepo.EquipTx(ctx, user.ID, &lost); err != domain.ErrNotOwned {
		t.Fatalf("equip err = %v, want ErrNotOwned", err)
	}

	state, err := svc.GetShopState(ctx, user.ID)
	if err != nil {
		t.Fatalf("shop state: %v", err)
	}
	if state.EquippedAvatarID == nil || *state.EquippedAvatarID != kept.ID {
		t.Fatalf("equipped avatar = %v, want %d after aborted equip", state.EquippedAvatarID, kept.ID)
	}
	cfg, err := repository.NewProfileConfigRepository(dbp).Get(ctx, user.ID)
	if err != nil || cfg == nil {
		t.Fatalf("get professor config: %v", err)
	}
	if cfg.AvatarItemID == nil || *cfg.AvatarItemID != kept.ID {
		t.Fatalf("professor avatar = %v, want %d after aborted equip", cfg.AvatarItemID, kept.ID)
	}
}

func TestCatalogOrdering(t *testing.T) {
	_, svc, _ := setupShop(t)

	items, err := svc.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("catalog is empty")
	}

	ordered := sort.SliceIsSorted(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Cost < items[j].Cost
	})
	if !ordered {
		t.Fatal("catalog not ordered by (category, cost)")
	}
}
