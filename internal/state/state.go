// Package state holds the in-memory UI state and the controller that every
// user action goes through.
package state

import (
	"errors"
	"sync"

	"gestorpro/internal/domain"
	applog "gestorpro/internal/log"
	"gestorpro/internal/repos"
	"gestorpro/internal/services"
)

// State is everything a view needs. Products, Sales and Quotes mirror the
// document as of the last reload.
type State struct {
	CurrentUser    *domain.User
	ActiveTab      domain.Tab
	Products       []domain.Product
	Sales          []domain.Sale
	Quotes         []domain.Quote
	Cart           []domain.LineItem
	QuoteDraft     *domain.QuoteDraft
	EditingProduct *domain.Product
	Notice         string

	// inventory filters
	Query    string
	Category string
}

type Deps struct {
	Products  *repos.ProductRepo
	Sales     *repos.SaleRepo
	Quotes    *repos.QuoteRepo
	Inventory *services.InventoryService
	Selling   *services.SaleService
	Quoting   *services.QuoteService
	Auth      *services.AuthService
}

// Controller serialises actions on one State.
type Controller struct {
	mu sync.Mutex
	st State
	d  Deps
}

func New(d Deps) *Controller {
	c := &Controller{d: d}
	c.reload()
	return c
}

func (c *Controller) reload() {
	c.st.Products = c.d.Products.All()
	c.st.Sales = c.d.Sales.All()
	c.st.Quotes = c.d.Quotes.All()
}

// fail records err as the notice. Unexpected errors are logged as well.
func (c *Controller) fail(action string, err error) error {
	c.st.Notice = err.Error()
	if errors.Is(err, services.ErrPersist) {
		applog.Error(nil, action+".fail", err, nil)
	}
	return err
}

// Snapshot reloads the collections and returns a copy of the state. The
// notice is handed out once and then cleared.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
	out := c.copyState()
	c.st.Notice = ""
	return out
}

// Peek is Snapshot without consuming the notice.
func (c *Controller) Peek() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
	return c.copyState()
}

func (c *Controller) copyState() State {
	out := c.st
	out.Cart = append([]domain.LineItem(nil), c.st.Cart...)
	if c.st.QuoteDraft != nil {
		d := *c.st.QuoteDraft
		d.Items = append([]domain.LineItem(nil), d.Items...)
		out.QuoteDraft = &d
	}
	if c.st.EditingProduct != nil {
		p := *c.st.EditingProduct
		out.EditingProduct = &p
	}
	if c.st.CurrentUser != nil {
		u := *c.st.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

// Notify sets a notice without changing anything else.
func (c *Controller) Notify(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Notice = msg
}

func (c *Controller) SetTab(t domain.Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ActiveTab = t
}

// SetFilter narrows the inventory list.
func (c *Controller) SetFilter(q, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Query, c.st.Category = q, category
}

// ---------- session ----------

func (c *Controller) User() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.CurrentUser == nil {
		return nil
	}
	u := *c.st.CurrentUser
	return &u
}

// Resume restores the user from the session marker, if any.
func (c *Controller) Resume() *domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, err := c.d.Auth.Resume()
	if err != nil {
		applog.Warn(nil, "session.resume.fail", err, nil)
		return nil
	}
	c.st.CurrentUser = u
	return u
}

func (c *Controller) Login(email, pass string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, err := c.d.Auth.Login(email, pass)
	if err != nil {
		return err
	}
	c.st.CurrentUser = u
	c.st.ActiveTab = domain.TabDashboard
	return nil
}

func (c *Controller) Register(name, email, pass string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, err := c.d.Auth.Register(name, email, pass)
	if err != nil {
		return err
	}
	c.st.CurrentUser = u
	c.st.ActiveTab = domain.TabDashboard
	return nil
}

// Logout clears the session marker and every in-progress draft.
func (c *Controller) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.d.Auth.Logout()
	c.st = State{}
	c.reload()
	return err
}

// ---------- inventory ----------

// EditProduct loads a product into the form; an unknown id clears the form.
func (c *Controller) EditProduct(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.ActiveTab = domain.TabInventory
	c.reload()
	if p, ok := repos.Find(c.st.Products, id); ok {
		c.st.EditingProduct = &p
		return
	}
	c.st.EditingProduct = nil
}

func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.EditingProduct = nil
}

func (c *Controller) SaveProduct(in services.ProductInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.d.Inventory.Save(in); err != nil {
		return c.fail("inventory.save", err)
	}
	c.st.EditingProduct = nil
	c.reload()
	return nil
}

func (c *Controller) DeleteProduct(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.d.Inventory.Delete(id); err != nil {
		return c.fail("inventory.delete", err)
	}
	if c.st.EditingProduct != nil && c.st.EditingProduct.ID == id {
		c.st.EditingProduct = nil
	}
	c.reload()
	return nil
}

// ImportProducts appends parsed rows and reports how many were taken.
func (c *Controller) ImportProducts(inputs []services.ProductInput) (added, skipped int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	added, skipped, err = c.d.Inventory.Import(inputs)
	if err != nil {
		return 0, skipped, c.fail("inventory.import", err)
	}
	c.reload()
	return added, skipped, nil
}

// ---------- sales ----------

// NewSale discards the cart.
func (c *Controller) NewSale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Cart = nil
	c.st.ActiveTab = domain.TabSales
}

func (c *Controller) AddToCart(productID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload()
	cart, err := c.d.Selling.AddToCart(c.st.Cart, c.st.Products, productID, qty)
	if err != nil {
		return c.fail("sale.cart.add", err)
	}
	c.st.Cart = cart
	return nil
}

func (c *Controller) RemoveFromCart(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.Cart = services.RemoveLine(c.st.Cart, index)
}

// CommitSale records the cart as a sale. The cart survives a failed commit.
func (c *Controller) CommitSale(paymentMethod string) (domain.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sale, err := c.d.Selling.Commit(c.st.Cart, paymentMethod)
	if err != nil {
		return domain.Sale{}, c.fail("sale.commit", err)
	}
	c.st.Cart = nil
	c.reload()
	return sale, nil
}

// ---------- quotes ----------

func (c *Controller) NewQuote() {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.d.Quoting.NewDraft()
	c.st.QuoteDraft = &d
	c.st.ActiveTab = domain.TabQuotes
}

func (c *Controller) EditQuote(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, err := c.d.Quoting.LoadDraft(id)
	if err != nil {
		return c.fail("quote.edit", err)
	}
	c.st.QuoteDraft = &d
	c.st.ActiveTab = domain.TabQuotes
	return nil
}

// CancelQuote drops the draft without saving.
func (c *Controller) CancelQuote() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.QuoteDraft = nil
}

// UpdateQuoteHeader stores customer fields typed into the draft form.
func (c *Controller) UpdateQuoteHeader(customer, email, phone, validity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureDraft()
	c.st.QuoteDraft.Customer = customer
	c.st.QuoteDraft.CustomerEmail = email
	c.st.QuoteDraft.CustomerPhone = phone
	c.st.QuoteDraft.Validity = validity
}

func (c *Controller) ensureDraft() {
	if c.st.QuoteDraft == nil {
		d := c.d.Quoting.NewDraft()
		c.st.QuoteDraft = &d
	}
}

func (c *Controller) AddToQuote(productID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureDraft()
	c.reload()
	d, err := c.d.Quoting.AddItem(*c.st.QuoteDraft, c.st.Products, productID, qty)
	if err != nil {
		return c.fail("quote.item.add", err)
	}
	c.st.QuoteDraft = &d
	return nil
}

func (c *Controller) RemoveFromQuote(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.QuoteDraft == nil {
		return
	}
	d := c.d.Quoting.RemoveItem(*c.st.QuoteDraft, index)
	c.st.QuoteDraft = &d
}

func (c *Controller) SaveQuote() (domain.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureDraft()
	q, err := c.d.Quoting.Save(*c.st.QuoteDraft)
	if err != nil {
		return domain.Quote{}, c.fail("quote.save", err)
	}
	c.st.QuoteDraft = nil
	c.reload()
	return q, nil
}

func (c *Controller) DeleteQuote(id string, confirmed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.d.Quoting.Delete(id, confirmed); err != nil {
		return c.fail("quote.delete", err)
	}
	if c.st.QuoteDraft != nil && c.st.QuoteDraft.ID == id {
		c.st.QuoteDraft = nil
	}
	c.reload()
	return nil
}

// Quote returns a saved quote for printing.
func (c *Controller) Quote(id string) (domain.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.d.Quoting.Get(id)
}
