// Package invoice builds invoice numbers and renders the printable invoice
// document persisted with every purchase.
package invoice

import (
	"fmt"
	"html/template"
	"math/rand/v2"
	"strings"
	"time"
)

// BuildNumber returns a human readable invoice number in the form
// INV-{year}{month:02d}-{n} with n in [1000, 9999]. The random suffix is not
// globally unique; the invoice store carries a unique index and callers retry
// on collision.
func BuildNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d%02d-%d", now.Year(), int(now.Month()), 1000+rand.IntN(9000))
}

// currencySymbols maps ISO currency codes to display symbols. Unknown codes
// fall back to printing the code itself.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
}

// Symbol returns the display symbol for a currency code.
func Symbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	if code == "" {
		return "$"
	}
	return code + " "
}

type documentData struct {
	Number string
	Date   string
	Title  string
	Price  string
	Symbol string
}

// Render produces the self-contained printable invoice document. It is pure:
// the same inputs always yield byte-identical output. The date is formatted
// with a fixed en-US long layout and the price to exactly two decimals.
func Render(number string, purchaseDate time.Time, assetTitle string, price float64, currency string) string {
	data := documentData{
		Number: number,
		Date:   purchaseDate.Format("January 2, 2006"),
		Title:  assetTitle,
		Price:  fmt.Sprintf("%.2f", price),
		Symbol: Symbol(currency),
	}

	var sb strings.Builder
	// The template is static and parses at init; rendering into a builder
	// cannot fail for this data shape.
	if err := documentTemplate.Execute(&sb, data); err != nil {
		return ""
	}
	return sb.String()
}

var documentTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Invoice {{.Number}}</title>
  <style>
    body {
      font-family: Arial, sans-serif;
      margin: 0;
      padding: 40px;
      color: #333;
    }
    .invoice-box {
      max-width: 800px;
      margin: auto;
      padding: 30px;
      border: 1px solid #eee;
      box-shadow: 0 0 10px rgba(0, 0, 0, 0.15);
    }
    .invoice-header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 20px;
    }
    .invoice-title {
      font-size: 28px;
      font-weight: bold;
      margin-bottom: 30px;
      color: #2c3e50;
    }
    .company-details, .customer-details {
      margin-bottom: 20px;
    }
    h2 {
      font-size: 18px;
      margin-bottom: 10px;
      color: #2c3e50;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 20px;
    }
    table th, table td {
      padding: 10px;
      text-align: left;
      border-bottom: 1px solid #eee;
    }
    table th {
      background-color: #f8f9fa;
    }
    .total {
      font-weight: bold;
      font-size: 18px;
      margin-top: 20px;
      text-align: right;
    }
    .footer {
      margin-top: 30px;
      text-align: center;
      color: #777;
      font-size: 12px;
    }
    @media print {
      body {
        padding: 0;
      }
      .invoice-box {
        box-shadow: none;
        border: none;
      }
      .print-button {
        display: none;
      }
    }
  </style>
</head>
<body>
  <div class="invoice-box">
    <div class="invoice-header">
      <div>
        <div class="invoice-title">INVOICE</div>
        <div>Invoice Number: {{.Number}}</div>
        <div>Date: {{.Date}}</div>
      </div>
    </div>

    <div class="company-details">
      <h2>From</h2>
      <div>Pixeldock Inc.</div>
      <div>123 Business Street</div>
      <div>Business City, 12345</div>
      <div>Email: billing@pixeldock.example</div>
    </div>

    <h2>Purchase Details</h2>
    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th>Price</th>
        </tr>
      </thead>
      <tbody>
        <tr>
          <td>{{.Title}}</td>
          <td>{{.Symbol}}{{.Price}}</td>
        </tr>
      </tbody>
    </table>

    <div class="total">
      Total: {{.Symbol}}{{.Price}}
    </div>

    <div class="footer">
      <p>Thank you for your purchase!</p>
      <p>This is an automatically generated invoice.</p>
    </div>

    <button class="print-button" onclick="window.print()">Print Invoice</button>
  </div>
</body>
</html>
`))
