package formfill_test

import (
	"context"
	"testing"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/page"
	"github.com/goliatone/go-formfill/pkg/testsupport"
	"github.com/goliatone/go-formfill/pkg/values"
)

const claimPage = `<!DOCTYPE html>
<html><body><form>
  <label for="email">Email Address</label>
  <input id="email" type="email" autocomplete="email">
  <label for="apt">Apt, Unit, Suite</label>
  <input id="apt" type="text">
  <label for="proof">Upload proof of purchase</label>
  <input id="proof" type="file">
</form></body></html>`

func TestSweepFromBytesSource(t *testing.T) {
	store := values.New(values.WithProfileValues(map[string]string{
		"email":        "ada@example.com",
		"address.unit": "Apt 4B",
	}))

	result, err := formfill.Sweep(context.Background(),
		page.SourceFromBytes("claim", []byte(claimPage)),
		orchestrator.WithValues(store),
	)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(result.Filled) != 2 {
		t.Fatalf("filled = %+v", result.Filled)
	}
	if len(result.FileUploads) != 1 || result.FileUploads[0].FieldID != "proof" {
		t.Fatalf("file uploads = %+v", result.FileUploads)
	}
}

func TestSweepDocument(t *testing.T) {
	doc := testsupport.PageDocument(t, claimPage)

	result, err := formfill.SweepDocument(context.Background(), doc,
		orchestrator.WithValues(values.New(values.WithProfileValues(map[string]string{
			"email": "ada@example.com",
		}))),
	)
	if err != nil {
		t.Fatalf("SweepDocument: %v", err)
	}
	if len(result.Filled) != 1 || result.Filled[0].FieldID != "email" {
		t.Fatalf("filled = %+v", result.Filled)
	}
}

func TestNewPageLoaderExtracts(t *testing.T) {
	doc, err := formfill.NewPageLoader().Load(context.Background(),
		page.SourceFromBytes("claim", []byte(claimPage)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Fields()) != 3 {
		t.Fatalf("fields = %+v", doc.Fields())
	}
}
