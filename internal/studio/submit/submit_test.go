package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garment-studio/internal/studio/export"
	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/session"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Fakes
// ============================================================

type fakeUploader struct {
	calls   int
	failFor string // подстрока имени файла, на которой загрузка отваливается
}

func (u *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	u.calls++
	if u.failFor != "" && strings.Contains(filename, u.failFor) {
		return "", fmt.Errorf("%w: refused", studioerr.ErrUploadFailed)
	}
	return "https://cdn.example/" + filename, nil
}

type fakeIntake struct {
	calls    int
	payloads []models.EnquiryPayload
	err      error
}

func (i *fakeIntake) Create(ctx context.Context, payload models.EnquiryPayload) error {
	i.calls++
	i.payloads = append(i.payloads, payload)
	return i.err
}

type nopLoader struct{}

func (nopLoader) Load(ctx context.Context, url string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 20, 15)), nil
}

func validForm() Form {
	return Form{
		FabricID:    "cotton",
		PrintType:   models.PrintPrinting,
		Quantity:    50,
		SizeRange:   models.SizeRanges[0],
		PhoneNumber: "+7 900 000-00-00",
	}
}

func submitSession() *session.Session {
	return session.New("tok", models.Product{
		ID: "tee",
		Colors: []models.Color{{
			ID: "white", Hex: "#ffffff",
			FrontImageURL: "/m/front.png",
			BackImageURL:  "/m/back.png",
		}},
	})
}

func newTestOrchestrator(u Uploader, i Intake) *Orchestrator {
	e := export.New(nopLoader{})
	e.Width = 40
	e.Height = 30
	return NewOrchestrator(u, i, e)
}

// ============================================================
// Validation
// ============================================================

func TestValidateCollectsAllMissingFields(t *testing.T) {
	err := Validate(Form{PrintType: "stamping", Quantity: -1})

	var verr *studioerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t,
		[]string{"fabricId", "printType", "quantity", "sizeRange", "phoneNumber"},
		verr.Fields)
}

func TestValidatePassesCompleteForm(t *testing.T) {
	assert.NoError(t, Validate(validForm()))
}

func TestSubmitInvalidFormUploadsNothing(t *testing.T) {
	uploader := &fakeUploader{}
	intake := &fakeIntake{}
	orch := newTestOrchestrator(uploader, intake)

	sess := submitSession()
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})

	err := orch.Submit(context.Background(), sess, Form{})

	var verr *studioerr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, uploader.calls, "валидация идёт раньше любых загрузок")
	assert.Zero(t, intake.calls)
}

// ============================================================
// Payload assembly
// ============================================================

func TestSubmitFrontOnlyOmitsBackAndSide(t *testing.T) {
	uploader := &fakeUploader{}
	intake := &fakeIntake{}
	orch := newTestOrchestrator(uploader, intake)

	sess := submitSession()
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})

	require.NoError(t, orch.Submit(context.Background(), sess, validForm()))
	require.Equal(t, 1, intake.calls)

	p := intake.payloads[0]
	assert.Contains(t, p.DesignImageURL, "design-front-")

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "backDesignImageUrl")
	assert.NotContains(t, fields, "sideDesignImageUrl")
	assert.NotContains(t, fields, "originalLogoUrl")
}

func TestSubmitOriginalUploadFailureDropsOnlyThatFile(t *testing.T) {
	uploader := &fakeUploader{failFor: "logo-1-"}
	intake := &fakeIntake{}
	orch := newTestOrchestrator(uploader, intake)

	sess := submitSession()
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})
	for i := 0; i < 3; i++ {
		sess.AddOriginal(ingest.Original{
			Name:    fmt.Sprintf("logo%d.png", i),
			DataURL: ingest.EncodeDataURL("image/png", []byte("png-bytes")),
			Size:    9,
		})
	}

	require.NoError(t, orch.Submit(context.Background(), sess, validForm()))
	require.Equal(t, 1, intake.calls)

	var logos []string
	require.NoError(t, json.Unmarshal([]byte(intake.payloads[0].OriginalLogoURL), &logos))
	require.Len(t, logos, 2)
	assert.Contains(t, logos[0], "logo-0-logo0.png")
	assert.Contains(t, logos[1], "logo-2-logo2.png")
}

func TestSubmitCompositeUploadFailureStillFiles(t *testing.T) {
	uploader := &fakeUploader{failFor: "design-front-"}
	intake := &fakeIntake{}
	orch := newTestOrchestrator(uploader, intake)

	sess := submitSession()
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})

	require.NoError(t, orch.Submit(context.Background(), sess, validForm()))
	require.Equal(t, 1, intake.calls)
	assert.Empty(t, intake.payloads[0].DesignImageURL)
}

func TestSubmitIntakeErrorPropagates(t *testing.T) {
	intakeErr := &studioerr.IntakeError{Message: "rejected"}
	intake := &fakeIntake{err: intakeErr}
	orch := newTestOrchestrator(&fakeUploader{}, intake)

	sess := submitSession()
	sess.Scene().Add(scene.Object{Type: scene.TypeRect, Width: 10, Height: 10, Fill: "#ff0000"})

	err := orch.Submit(context.Background(), sess, validForm())

	var ierr *studioerr.IntakeError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "rejected", ierr.Message)
}
