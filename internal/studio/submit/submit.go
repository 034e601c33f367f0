package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"garment-studio/internal/studio/export"
	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/session"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Submission Form
// ============================================================

// Form — поля формы заявки с конструктора.
type Form struct {
	FabricID      string `json:"fabricId"`
	PrintType     string `json:"printType"`
	Quantity      int    `json:"quantity"`
	SizeRange     string `json:"sizeRange"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Notes         string `json:"notes"`
}

// Validate проверяет обязательные поля до любой загрузки файлов,
// чтобы не гонять байты впустую.
func Validate(f Form) error {
	var missing []string

	if f.FabricID == "" {
		missing = append(missing, "fabricId")
	}
	if f.PrintType != models.PrintEmbroidery && f.PrintType != models.PrintPrinting {
		missing = append(missing, "printType")
	}
	if f.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if !models.ValidSizeRange(f.SizeRange) {
		missing = append(missing, "sizeRange")
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		missing = append(missing, "phoneNumber")
	}

	if len(missing) > 0 {
		return &studioerr.ValidationError{Fields: missing}
	}
	return nil
}

// ============================================================
// Orchestrator
// ============================================================

// Uploader грузит один файл и возвращает его публичный URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Intake отправляет заявку в сервис приёма.
type Intake interface {
	Create(ctx context.Context, payload models.EnquiryPayload) error
}

type Orchestrator struct {
	uploader Uploader
	intake   Intake
	exporter *export.Exporter
}

func NewOrchestrator(uploader Uploader, intake Intake, exporter *export.Exporter) *Orchestrator {
	return &Orchestrator{uploader: uploader, intake: intake, exporter: exporter}
}

// Submit валидирует форму, экспортирует композиты, грузит их вместе
// с оригиналами и постит заявку. Отвал одной загрузки не валит
// заявку — файл просто выпадает из payload. Вызывающий держит лок
// сессии на весь submit.
func (o *Orchestrator) Submit(ctx context.Context, sess *session.Session, form Form) error {
	if err := Validate(form); err != nil {
		return err
	}

	composites, err := o.exporter.ExportAll(ctx, sess)
	if err != nil {
		return err
	}

	urls := make(map[session.View]string)
	for v, data := range composites {
		name := fmt.Sprintf("design-%s-%s.jpg", v, uuid.NewString())
		url, err := o.uploader.Upload(ctx, name, data)
		if err != nil {
			log.Printf("[SUBMIT] composite %s upload failed: %v", v, err)
			continue
		}
		urls[v] = url
	}

	logoURLs := o.uploadOriginals(ctx, sess.Originals())

	payload := models.EnquiryPayload{
		FabricID:           form.FabricID,
		PrintType:          form.PrintType,
		Quantity:           form.Quantity,
		SizeRange:          form.SizeRange,
		PhoneNumber:        form.PhoneNumber,
		Email:              form.Email,
		CompanyName:        form.CompanyName,
		ContactPerson:      form.ContactPerson,
		Notes:              form.Notes,
		DesignImageURL:     urls[session.ViewFront],
		BackDesignImageURL: urls[session.ViewBack],
		SideDesignImageURL: urls[session.ViewSide],
	}

	if len(logoURLs) > 0 {
		encoded, err := json.Marshal(logoURLs)
		if err == nil {
			payload.OriginalLogoURL = string(encoded)
		}
	}

	return o.intake.Create(ctx, payload)
}

func (o *Orchestrator) uploadOriginals(ctx context.Context, originals []ingest.Original) []string {
	var urls []string
	for i, orig := range originals {
		_, data, err := ingest.DecodeDataURL(orig.DataURL)
		if err != nil {
			log.Printf("[SUBMIT] original %d (%s): %v", i, orig.Name, err)
			continue
		}

		name := fmt.Sprintf("logo-%d-%s", i, orig.Name)
		url, err := o.uploader.Upload(ctx, name, data)
		if err != nil {
			log.Printf("[SUBMIT] original %s upload failed: %v", orig.Name, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
