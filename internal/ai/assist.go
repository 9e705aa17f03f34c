// Package ai holds the Gemini-backed assist features: repair note
// suggestions, VAT invoice text parsing and customer debt analysis. All of
// them are best-effort; callers surface failures as a single advisory
// message and the surrounding workflow continues without them.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"servicesales-pro/internal/models"
)

const modelName = "gemini-2.0-flash-001"

func newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// SuggestRepairNote turns customer-reported symptoms into a short
// technical note for the intake receipt.
func SuggestRepairNote(ctx context.Context, apiKey, symptoms string) (string, error) {
	client, err := newClient(ctx, apiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)

	prompt := fmt.Sprintf(`Bạn là kỹ thuật viên trưởng của trung tâm sửa chữa máy tính/điện tử.
Dựa trên mô tả lỗi của khách hàng: "%s"
Hãy gợi ý một ghi chú kỹ thuật ngắn gọn để in vào phiếu tiếp nhận dịch vụ.
Ghi chú nên bao gồm: Dự đoán lỗi, Hướng kiểm tra.
Định dạng trả về: Văn bản thuần túy, không markdown cầu kỳ, ngắn gọn.`, symptoms)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return textOf(resp), nil
}

// parsedVATInvoice is the shape the model is asked to return. Date stays a
// string here because scanned invoices carry every imaginable format.
type parsedVATInvoice struct {
	InvoiceNumber   string  `json:"invoiceNumber"`
	Date            string  `json:"date"`
	PartnerName     string  `json:"partnerName"`
	TaxCode         string  `json:"taxCode"`
	TaxRate         float64 `json:"taxRate"`
	Type            string  `json:"type"`
	InternalCompany string  `json:"internalCompany"`
	Items           []struct {
		ProductName string  `json:"productName"`
		Unit        string  `json:"unit"`
		Quantity    float64 `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
		Total       float64 `json:"total"`
	} `json:"items"`
}

var vatInvoiceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"invoiceNumber": {Type: genai.TypeString},
		"date":          {Type: genai.TypeString, Description: "Invoice date, YYYY-MM-DD if possible"},
		"partnerName":   {Type: genai.TypeString},
		"taxCode":       {Type: genai.TypeString},
		"taxRate":       {Type: genai.TypeNumber},
		"type": {
			Type:        genai.TypeString,
			Description: "Invoice type: 'IN' (Input/Purchase) or 'OUT' (Output/Sale).",
		},
		"internalCompany": {
			Type:        genai.TypeString,
			Description: "Values: 'TNC' or 'TAY_PHAT'. Indicates which of my companies is involved.",
		},
		"items": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"productName": {Type: genai.TypeString},
					"unit":        {Type: genai.TypeString},
					"quantity":    {Type: genai.TypeNumber},
					"unitPrice":   {Type: genai.TypeNumber},
					"total":       {Type: genai.TypeNumber},
				},
			},
		},
	},
}

const myCompaniesContext = `MY COMPANIES (The "Home" entities):
1. "Giải pháp Tây Phát" (code TAY_PHAT)
2. "TNC"
If the invoice SELLER is one of my companies, type is 'OUT'.
If the invoice BUYER is one of my companies, type is 'IN'.`

// ParseVATInvoice extracts a VAT invoice draft from raw text (an email
// body or pasted PDF text). Totals on the returned draft are not trusted:
// the caller runs them through the vat package before storing anything.
func ParseVATInvoice(ctx context.Context, apiKey, text string) (*models.VATInvoice, error) {
	client, err := newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = vatInvoiceSchema

	prompt := fmt.Sprintf(`%s

Extract the VAT invoice from the following text. Numbers use Vietnamese
formatting (dots as thousand separators). Return only the structured data.

TEXT:
%s`, myCompaniesContext, text)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var parsed parsedVATInvoice
	if err := json.Unmarshal([]byte(textOf(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("unexpected model output: %w", err)
	}

	draft := &models.VATInvoice{
		InvoiceNumber: parsed.InvoiceNumber,
		PartnerName:   parsed.PartnerName,
		TaxCode:       parsed.TaxCode,
		TaxRate:       parsed.TaxRate,
		Type:          models.VATInvoiceType(strings.ToUpper(parsed.Type)),
		Status:        models.VATPending,
	}
	if parsed.InternalCompany == "TNC" {
		draft.Warehouse = models.WarehouseTNC
	} else {
		draft.Warehouse = models.WarehouseTayPhat
	}
	if t, err := time.Parse("2006-01-02", parsed.Date); err == nil {
		draft.Date = t
	} else {
		draft.Date = time.Now()
	}
	for _, item := range parsed.Items {
		draft.Items = append(draft.Items, models.VATInvoiceItem{
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	return draft, nil
}

// AnalyzeCustomerDebt writes a short risk assessment of one customer's
// outstanding balance for the debt screen.
func AnalyzeCustomerDebt(ctx context.Context, apiKey string, customer *models.Customer, invoices []models.Invoice) (string, error) {
	client, err := newClient(ctx, apiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)

	var unpaid []string
	for i := range invoices {
		inv := &invoices[i]
		if inv.CustomerID != customer.ID || inv.Status == models.InvoicePaid || inv.IsCancelled() {
			continue
		}
		unpaid = append(unpaid, fmt.Sprintf("- Mã %s: Còn nợ %.0f VNĐ", inv.ID, inv.TotalAmount-inv.PaidAmount))
	}

	prompt := fmt.Sprintf(`Bạn là một trợ lý kế toán chuyên nghiệp cho công ty dịch vụ sửa chữa.
Hãy phân tích tình hình công nợ của khách hàng sau và đưa ra một đoạn nhận xét ngắn gọn (dưới 100 từ) về rủi ro và đề xuất hành động.

Khách hàng: %s
Tổng nợ hiện tại: %.0f VNĐ
Số lượng hóa đơn chưa thanh toán: %d
Chi tiết các hóa đơn chưa trả hết:
%s

Trả lời bằng Tiếng Việt, giọng văn chuyên nghiệp, lịch sự.`,
		customer.Name, customer.TotalDebt, len(unpaid), strings.Join(unpaid, "\n"))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return textOf(resp), nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return ""
}
