package state_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gestorpro/internal/domain"
	"gestorpro/internal/repos"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/store"
)

func init() { services.BcryptCost = bcrypt.MinCost }

func newController(t *testing.T, products ...domain.Product) (*state.Controller, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	s := store.New(dir)
	s.Initialize()
	prods := repos.NewProductRepo(s)
	require.True(t, prods.Replace(products))

	db, err := repos.OpenDB(filepath.Join(dir, "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ids := services.NewIDGen()
	sales := repos.NewSaleRepo(s)
	quotes := repos.NewQuoteRepo(s)
	c := state.New(state.Deps{
		Products:  prods,
		Sales:     sales,
		Quotes:    quotes,
		Inventory: services.NewInventoryService(prods, ids),
		Selling:   services.NewSaleService(sales, ids),
		Quoting:   services.NewQuoteService(quotes, ids),
		Auth:      services.NewAuthService(repos.NewUserRepo(s), repos.NewSessionRepo(db), ids),
	})
	return c, s
}

func TestController_SaleFlow(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "p1", Description: "Caneta", Quantity: 10, SellPrice: 2})

	c.NewSale()
	require.NoError(t, c.AddToCart("p1", 3))
	st := c.Snapshot()
	require.Equal(t, domain.TabSales, st.ActiveTab)
	require.Len(t, st.Cart, 1)

	sale, err := c.CommitSale("pix")
	require.NoError(t, err)
	require.Equal(t, "pix", sale.PaymentMethod)

	st = c.Snapshot()
	require.Empty(t, st.Cart)
	require.Equal(t, 7, st.Products[0].Quantity)
	require.Len(t, st.Sales, 1)
}

func TestController_ValidationSetsNoticeOnce(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "p1", Quantity: 1, SellPrice: 2})

	require.ErrorIs(t, c.AddToCart("p1", 5), services.ErrInsufficientStock)
	st := c.Snapshot()
	require.Equal(t, services.ErrInsufficientStock.Error(), st.Notice)
	require.Empty(t, st.Cart)

	require.Empty(t, c.Snapshot().Notice)
}

func TestController_EmptyCartKeepsState(t *testing.T) {
	c, _ := newController(t)
	_, err := c.CommitSale("")
	require.ErrorIs(t, err, services.ErrEmptyCart)
	st := c.Snapshot()
	require.Empty(t, st.Sales)
	require.NotEmpty(t, st.Notice)
}

func TestController_RemoveFromCart(t *testing.T) {
	c, _ := newController(t,
		domain.Product{ID: "a", Quantity: 5, SellPrice: 1},
		domain.Product{ID: "b", Quantity: 5, SellPrice: 2},
	)
	require.NoError(t, c.AddToCart("a", 1))
	require.NoError(t, c.AddToCart("b", 1))
	c.RemoveFromCart(0)
	cart := c.Snapshot().Cart
	require.Len(t, cart, 1)
	require.Equal(t, "b", cart[0].ID)
}

func TestController_QuoteFlow(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "p1", Description: "Pasta", Quantity: 0, SellPrice: 5})

	c.NewQuote()
	st := c.Snapshot()
	require.NotNil(t, st.QuoteDraft)
	require.Equal(t, services.DefaultValidity, st.QuoteDraft.Validity)

	_, err := c.SaveQuote()
	require.ErrorIs(t, err, services.ErrEmptyQuote)
	require.Empty(t, c.Snapshot().Quotes)

	c.UpdateQuoteHeader("Loja X", "x@loja.test", "555", "15")
	require.NoError(t, c.AddToQuote("p1", 4))
	q, err := c.SaveQuote()
	require.NoError(t, err)
	require.Equal(t, 20.0, q.TotalPrice)
	require.Equal(t, "15", q.Validity)

	st = c.Snapshot()
	require.Nil(t, st.QuoteDraft)
	require.Len(t, st.Quotes, 1)

	require.NoError(t, c.EditQuote(q.ID))
	c.RemoveFromQuote(0)
	require.NoError(t, c.AddToQuote("p1", 1))
	q2, err := c.SaveQuote()
	require.NoError(t, err)
	require.Equal(t, q.ID, q2.ID)
	require.Equal(t, q.CreatedAt, q2.CreatedAt)
	require.Len(t, c.Snapshot().Quotes, 1)

	require.ErrorIs(t, c.DeleteQuote(q.ID, false), services.ErrNotConfirmed)
	require.Len(t, c.Snapshot().Quotes, 1)
	require.NoError(t, c.DeleteQuote(q.ID, true))
	require.Empty(t, c.Snapshot().Quotes)
}

func TestController_ProductEditing(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "p1", Description: "Old", Quantity: 1})

	c.EditProduct("p1")
	st := c.Snapshot()
	require.Equal(t, domain.TabInventory, st.ActiveTab)
	require.NotNil(t, st.EditingProduct)

	require.NoError(t, c.SaveProduct(services.ProductInput{ID: "p1", Description: "New", Quantity: 2, BuyPrice: 10, Margin: 20}))
	st = c.Snapshot()
	require.Nil(t, st.EditingProduct)
	require.Equal(t, "New", st.Products[0].Description)
	require.Equal(t, 12.0, st.Products[0].SellPrice)

	require.Error(t, c.SaveProduct(services.ProductInput{Description: ""}))
	require.Len(t, c.Snapshot().Products, 1)

	require.NoError(t, c.DeleteProduct("p1"))
	require.Empty(t, c.Snapshot().Products)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "a", Quantity: 5, SellPrice: 1})
	require.NoError(t, c.AddToCart("a", 1))
	st := c.Snapshot()
	st.Cart[0].Quantity = 99
	require.Equal(t, 1, c.Snapshot().Cart[0].Quantity)
}

func TestController_PeekKeepsNotice(t *testing.T) {
	c, _ := newController(t)
	c.Notify("hello")
	require.Equal(t, "hello", c.Peek().Notice)
	require.Equal(t, "hello", c.Snapshot().Notice)
	require.Empty(t, c.Snapshot().Notice)
}

func TestController_LoginResumeLogout(t *testing.T) {
	c, _ := newController(t)
	require.Nil(t, c.Resume())

	require.NoError(t, c.Register("Ana", "ana@loja.test", "segredo1"))
	require.NotNil(t, c.User())

	c.NewSale()
	require.NoError(t, c.Logout())
	st := c.Snapshot()
	require.Nil(t, st.CurrentUser)
	require.Equal(t, domain.TabDashboard, st.ActiveTab)

	require.ErrorIs(t, c.Login("ana@loja.test", "errada"), services.ErrBadCreds)
	require.NoError(t, c.Login("ana@loja.test", "segredo1"))
	require.Equal(t, "Ana", c.Resume().Name)
}

func TestController_ConcurrentActions(t *testing.T) {
	c, _ := newController(t, domain.Product{ID: "a", Quantity: 1000, SellPrice: 1})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.AddToCart("a", 1)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()
	require.Len(t, c.Snapshot().Cart, 20)
}

func TestController_ImportProducts(t *testing.T) {
	c, _ := newController(t)
	added, skipped, err := c.ImportProducts([]services.ProductInput{
		{Description: "A", Quantity: 1, BuyPrice: 1},
		{Description: "B", Quantity: -1},
	})
	require.NoError(t, err)
	require.Equal(t, 1, added)
	require.Equal(t, 1, skipped)
	require.Len(t, c.Snapshot().Products, 1)
}
