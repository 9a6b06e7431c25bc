// Package entry is the sales entry screen: a cart of barang and jasa lines for one pelanggan.
package entry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	cdomain "github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/resource/report"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

var (
	ErrUnknownItem      = errors.New("barang/jasa tidak ada di daftar")
	ErrUnknownPelanggan = errors.New("pelanggan tidak ada di daftar")
	ErrNoSuchLine       = errors.New("baris tidak ada")
)

type Line struct {
	ID        rdomain.ID
	Name      string
	Type      domain.ItemType
	Kuantitas int
	Price     decimal.Decimal
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Kuantitas)))
}

type Submitter interface {
	Submit(ctx context.Context, req domain.CreateSaleRequest) (domain.CreateSaleResponse, error)
}

type Sources struct {
	Barang    rgateway.Gateway[cdomain.Barang]
	Jasa      rgateway.Gateway[cdomain.Jasa]
	Pelanggan rgateway.Gateway[cdomain.Pelanggan]
}

type Cart struct {
	src       Sources
	submitter Submitter
	notifier  notify.Notifier

	mu          sync.Mutex
	barang      []cdomain.Barang
	jasa        []cdomain.Jasa
	pelanggan   []cdomain.Pelanggan
	lines       []Line
	pelangganID rdomain.ID
	submitting  bool
}

func NewCart(src Sources, submitter Submitter, n notify.Notifier) *Cart {
	return &Cart{src: src, submitter: submitter, notifier: n}
}

// Load fetches the pick lists. On failure the previous lists are kept.
func (c *Cart) Load(ctx context.Context) error {
	q := rdomain.Query{Sort: rdomain.SortAZ}
	barang, err := c.src.Barang.List(ctx, q)
	if err != nil {
		return c.fail("load barang", err)
	}
	jasa, err := c.src.Jasa.List(ctx, q)
	if err != nil {
		return c.fail("load jasa", err)
	}
	pelanggan, err := c.src.Pelanggan.List(ctx, q)
	if err != nil {
		return c.fail("load pelanggan", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.barang, c.jasa, c.pelanggan = barang, jasa, pelanggan
	return nil
}

func (c *Cart) Barang() []cdomain.Barang {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cdomain.Barang(nil), c.barang...)
}

func (c *Cart) Jasa() []cdomain.Jasa {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cdomain.Jasa(nil), c.jasa...)
}

func (c *Cart) Pelanggan() []cdomain.Pelanggan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cdomain.Pelanggan(nil), c.pelanggan...)
}

// AddItem appends a new line with kuantitas 1 at the item's current price.
func (c *Cart) AddItem(kind domain.ItemType, id rdomain.ID) error {
	c.mu.Lock()
	line, ok := c.lookup(kind, id)
	if ok {
		c.lines = append(c.lines, line)
	}
	c.mu.Unlock()

	if !ok {
		return c.fail("add item", fmt.Errorf("%s %s: %w", kind, id, ErrUnknownItem))
	}
	return nil
}

func (c *Cart) lookup(kind domain.ItemType, id rdomain.ID) (Line, bool) {
	switch kind {
	case domain.ItemBarang:
		if i := rdomain.IndexOf(c.barang, id); i >= 0 {
			b := c.barang[i]
			return Line{ID: b.ID, Name: b.Name, Type: kind, Kuantitas: 1, Price: b.Price}, true
		}
	case domain.ItemJasa:
		if i := rdomain.IndexOf(c.jasa, id); i >= 0 {
			j := c.jasa[i]
			return Line{ID: j.ID, Name: j.Name, Type: kind, Kuantitas: 1, Price: j.Price}, true
		}
	}
	return Line{}, false
}

// SetQuantity parses text; anything that is not a positive integer becomes 1.
func (c *Cart) SetQuantity(i int, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return ErrNoSuchLine
	}
	c.lines[i].Kuantitas = ParseQuantity(text)
	return nil
}

func ParseQuantity(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (c *Cart) RemoveLine(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.lines) {
		return ErrNoSuchLine
	}
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
	return nil
}

func (c *Cart) SelectPelanggan(id rdomain.ID) error {
	c.mu.Lock()
	found := rdomain.IndexOf(c.pelanggan, id) >= 0
	if found {
		c.pelangganID = id
	}
	c.mu.Unlock()

	if !found {
		return c.fail("select pelanggan", fmt.Errorf("pelanggan %s: %w", id, ErrUnknownPelanggan))
	}
	return nil
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Total() decimal.Decimal {
	return report.Total(c.Lines(), Line.Subtotal)
}

// Request builds the wire payload, splitting lines into barang and jasa.
func (c *Cart) Request() (domain.CreateSaleRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestLocked()
}

func (c *Cart) requestLocked() (domain.CreateSaleRequest, error) {
	errs := rdomain.ValidationErrors{}
	if c.pelangganID == 0 {
		errs.Add("pelanggan_id", "pilih pelanggan")
	}
	if len(c.lines) == 0 {
		errs.Add("nama_barang", "masukkan barang/jasa")
	}
	if err := errs.OrNil(); err != nil {
		return domain.CreateSaleRequest{}, err
	}

	req := domain.CreateSaleRequest{
		PelangganID: c.pelangganID,
		Barang:      []domain.BarangLine{},
		Jasa:        []domain.JasaLine{},
	}
	for _, l := range c.lines {
		switch l.Type {
		case domain.ItemBarang:
			req.Barang = append(req.Barang, domain.BarangLine{IDBarang: l.ID, NamaBarang: l.Name, Kuantitas: l.Kuantitas, HargaSatuan: l.Price})
		case domain.ItemJasa:
			req.Jasa = append(req.Jasa, domain.JasaLine{IDJasa: l.ID, NamaJasa: l.Name, Kuantitas: l.Kuantitas, HargaSatuan: l.Price})
		}
	}
	req.Harga = req.Total()
	return req, nil
}

// Submit sends the sale. The cart is cleared only once the server accepted it.
func (c *Cart) Submit(ctx context.Context) (domain.CreateSaleResponse, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return domain.CreateSaleResponse{}, c.fail("submit", rdomain.ErrSessionBusy)
	}
	req, err := c.requestLocked()
	if err != nil {
		c.mu.Unlock()
		return domain.CreateSaleResponse{}, c.fail("submit", err)
	}
	c.submitting = true
	c.mu.Unlock()

	resp, err := c.submitter.Submit(ctx, req)

	c.mu.Lock()
	c.submitting = false
	if err == nil {
		c.lines, c.pelangganID = nil, 0
	}
	c.mu.Unlock()

	if err != nil {
		return domain.CreateSaleResponse{}, c.fail("submit", err)
	}
	msg := resp.Message
	if msg == "" {
		msg = "Penjualan berhasil disimpan"
	}
	notify.Success(c.notifier, msg)
	return resp, nil
}

func (c *Cart) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines, c.pelangganID = nil, 0
}

func (c *Cart) fail(op string, err error) error {
	var verr rdomain.ValidationErrors
	if errors.As(err, &verr) {
		logger.Warn("Penjualan: %s rejected: %v", op, err)
	} else {
		logger.Error(fmt.Sprintf("Penjualan: %s failed", op), err)
	}
	notify.Failure(c.notifier, rdomain.UserMessage(err))
	return err
}
