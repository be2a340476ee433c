package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gestorpro/internal/domain"
	"gestorpro/internal/services"
)

func TestInventoryXLSX_RoundTrip(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Description: "Arroz 5kg", Category: "Mercearia", Quantity: 12, BuyPrice: 20.5, Margin: 30, SellPrice: 26.65},
		{ID: "2", Description: "Sabão", Category: "Limpeza", Quantity: 0, BuyPrice: 3, Margin: 50, SellPrice: 4.5},
	}
	var buf bytes.Buffer
	require.NoError(t, InventoryXLSX(products, &buf))

	got, skipped, err := ParseProducts(&buf)
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Equal(t, []services.ProductInput{
		{Description: "Arroz 5kg", Category: "Mercearia", Quantity: 12, BuyPrice: 20.5, Margin: 30},
		{Description: "Sabão", Category: "Limpeza", Quantity: 0, BuyPrice: 3, Margin: 50},
	}, got)
}

func TestInventoryXLSX_BoldHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InventoryXLSX(nil, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{InventorySheet}, f.GetSheetList())

	rows, err := f.GetRows(InventorySheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{inventoryHeader}, rows)

	id, err := f.GetCellStyle(InventorySheet, "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.True(t, style.Font.Bold)
}

func TestSalesXLSX_OneRowPerLine(t *testing.T) {
	sales := []domain.Sale{{
		ID: 1700000000000, CreatedAt: "2023-11-14T22:13:20.000Z", PaymentMethod: "pix", TotalPrice: 7,
		Items: []domain.LineItem{
			{ID: "a", Description: "Caneta", Quantity: 2, Price: 1, Total: 2},
			{ID: "b", Description: "Caderno", Quantity: 1, Price: 5, Total: 5},
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, SalesXLSX(sales, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SalesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Caderno", rows[2][3])
	require.Equal(t, "pix", rows[1][2])
}

func writeRows(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestParseProducts_PortugueseHeadersAndBadRows(t *testing.T) {
	buf := writeRows(t, [][]any{
		{"Produto", "Categoria", "Quantidade", "Preço de Compra", "Margem"},
		{"Feijão", "Mercearia", "4", "7,50", "40"},
		{"", "Mercearia", "1", "1", "1"},
		{"Óleo", "Mercearia", "2", "abc", "10"},
		{},
		{"Açúcar", "", "", "", ""},
	})
	got, skipped, err := ParseProducts(buf)
	require.NoError(t, err)
	require.Equal(t, 2, skipped)
	require.Equal(t, []services.ProductInput{
		{Description: "Feijão", Category: "Mercearia", Quantity: 4, BuyPrice: 7.5, Margin: 40},
		{Description: "Açúcar"},
	}, got)
}

func TestParseProducts_NeedsDescriptionColumn(t *testing.T) {
	buf := writeRows(t, [][]any{{"Quantity", "Buy Price"}, {"1", "2"}})
	_, _, err := ParseProducts(buf)
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestParseProducts_NotASpreadsheet(t *testing.T) {
	_, _, err := ParseProducts(bytes.NewBufferString("not a zip"))
	require.Error(t, err)
}
