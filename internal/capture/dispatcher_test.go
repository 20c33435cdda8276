package capture

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/georgeji/change-bridge/internal/config"
	"github.com/georgeji/change-bridge/internal/metrics"
	"github.com/georgeji/change-bridge/internal/models"
)

type enqueued struct {
	EntityType string
	EntityID   string
	Operation  models.Operation
	Origin     models.Origin
}

type fakeLedger struct {
	mu          sync.Mutex
	records     []enqueued
	err         error
	panicOn     string
	integration map[string]string
}

func (l *fakeLedger) Enqueue(_ context.Context, entityType, entityID string, op models.Operation, origin models.Origin) (uint64, error) {
	if entityType == l.panicOn {
		panic("ledger exploded")
	}
	if l.err != nil {
		return 0, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, enqueued{entityType, entityID, op, origin})
	return uint64(len(l.records)), nil
}

func (l *fakeLedger) ResolveIntegrationIdentity(_ context.Context, label string) (string, bool) {
	id, ok := l.integration[label]
	return id, ok
}

type sent struct {
	Event   string
	Payload map[string]any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (n *fakeNotifier) EntityPayload(eventName, entityType, entityID string, op models.Operation, queueID uint64) map[string]any {
	return map[string]any{
		"event":      eventName,
		"entityType": entityType,
		"entityId":   entityID,
		"operation":  string(op),
		"queueId":    queueID,
	}
}

func (n *fakeNotifier) FireAndForget(_ context.Context, eventName string, payload map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{eventName, payload})
}

type flagSet map[string]bool

func (f flagSet) Enabled(key string) bool {
	v, ok := f[key]
	return !ok || v
}

type fakeResolver struct {
	parents map[string]string
	media   map[string]string
	err     error
	calls   int
}

func (r *fakeResolver) ParentID(_ context.Context, _ string, childID string) (string, bool, error) {
	r.calls++
	if r.err != nil {
		return "", false, r.err
	}
	id, ok := r.parents[childID]
	return id, ok, nil
}

func (r *fakeResolver) MediaID(_ context.Context, productMediaID string) (string, bool, error) {
	r.calls++
	if r.err != nil {
		return "", false, r.err
	}
	id, ok := r.media[productMediaID]
	return id, ok, nil
}

type fixture struct {
	ledger   *fakeLedger
	notifier *fakeNotifier
	flags    flagSet
	resolver *fakeResolver
	logs     *observer.ObservedLogs
	d        *Dispatcher
}

func newFixture() *fixture {
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		ledger:   &fakeLedger{integration: map[string]string{"cobby": "int-cobby"}},
		notifier: &fakeNotifier{},
		flags:    flagSet{},
		resolver: &fakeResolver{parents: map[string]string{}, media: map[string]string{}},
		logs:     logs,
	}
	f.d = NewDispatcher(f.ledger, f.notifier, f.flags, f.resolver, "cobby", zap.New(core))
	return f
}

var adminUser = Source{Type: SourceAdminAPI, UserID: "user-1"}

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		event      string
		wantType   string
		wantDelete bool
		wantOK     bool
	}{
		{"product written", "product.written", models.EntityProduct, false, true},
		{"product deleted", "product.deleted", models.EntityProduct, true, true},
		{"price", "product_price.written", models.EntityProductPrice, false, true},
		{"option", "property_group_option.deleted", models.EntityPropertyGroupOption, true, true},
		{"manufacturer", "product_manufacturer.written", models.EntityManufacturer, false, true},
		{"unknown entity", "customer.written", "", false, false},
		{"unknown suffix", "product.loaded", "", false, false},
		{"bare", "product", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, deleted, ok := Lookup(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantType, kind.EntityType)
			assert.Equal(t, tt.wantDelete, deleted)
		})
	}
}

func TestKindsFlags(t *testing.T) {
	flags := map[string]string{}
	for _, k := range Kinds {
		flags[k.EntityType] = k.FlagKey
	}

	assert.Equal(t, config.FlagProductEvents, flags[models.EntityProductMedia])
	assert.Equal(t, config.FlagProductEvents, flags[models.EntityProductCategory])
	assert.Equal(t, config.FlagManufacturerEvents, flags[models.EntityManufacturer])
	assert.Equal(t, config.FlagPropertyGroupEvents, flags[models.EntityPropertyGroupOption])
	assert.Equal(t, config.FlagMediaEvents, flags[models.EntityMedia])
	assert.Len(t, Kinds, 16)
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name string
		pk   any
		want string
		ok   bool
	}{
		{"string", "abc", "abc", true},
		{"map id", map[string]any{"id": "abc", "versionId": "v"}, "abc", true},
		{"list", []any{"abc", "def"}, "abc", true},
		{"number", float64(42), "42", true},
		{"empty string", "", "", false},
		{"empty list", []any{}, "", false},
		{"map without id", map[string]any{"productId": "p"}, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WriteResult{PrimaryKey: tt.pk}.EntityID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandle_SimpleWritten(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:   "product.written",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: "p1", Operation: "insert"},
			{PrimaryKey: "p2", Operation: "update"},
			{PrimaryKey: "p3", Operation: "upsert"},
			{PrimaryKey: nil},
		},
	})

	require.Len(t, f.ledger.records, 3)
	assert.Equal(t, enqueued{models.EntityProduct, "p1", models.OperationInsert,
		models.Origin{Context: models.ContextAdminBackend, Actor: "user-1"}}, f.ledger.records[0])
	assert.Equal(t, models.OperationUpdate, f.ledger.records[1].Operation)
	assert.Equal(t, models.OperationUpdate, f.ledger.records[2].Operation)

	require.Len(t, f.notifier.sent, 3)
	assert.Equal(t, "product.written", f.notifier.sent[0].Event)
	assert.Equal(t, uint64(1), f.notifier.sent[0].Payload["queueId"])
}

func TestHandle_SimpleDeleted(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:    "tax.deleted",
		Source:  Source{Type: SourceSystem},
		Results: []WriteResult{{PrimaryKey: map[string]any{"id": "t1"}}},
	})

	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, enqueued{models.EntityTax, "t1", models.OperationDelete,
		models.Origin{Context: models.ContextSystem, Actor: models.ActorSystem}}, f.ledger.records[0])
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "tax.deleted", f.notifier.sent[0].Event)
}

func TestHandle_DisabledFlagSkipsLedger(t *testing.T) {
	f := newFixture()
	f.flags[config.FlagCategoryEvents] = false
	before := testutil.ToFloat64(metrics.CaptureSkipped.WithLabelValues(SkipDisabled))

	f.d.Handle(context.Background(), Event{
		Name:    "category.written",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "c1", Operation: "insert"}},
	})

	assert.Empty(t, f.ledger.records)
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CaptureSkipped.WithLabelValues(SkipDisabled)))
}

func TestHandle_UnsetFlagCountsAsEnabled(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:    "delivery_time.written",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "d1", Operation: "insert"}},
	})

	assert.Len(t, f.ledger.records, 1)
}

func TestHandle_UnknownEventIgnored(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:    "customer.written",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "c1"}},
	})

	assert.Empty(t, f.ledger.records)
	assert.Equal(t, 1, f.logs.FilterMessage("Ignoring unknown event").Len())
}

func TestHandle_ParentCascade(t *testing.T) {
	f := newFixture()
	f.resolver.parents["price-3"] = "P2"

	f.d.Handle(context.Background(), Event{
		Name:   "product_price.written",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: "price-1", Operation: "insert", Payload: map[string]any{"productId": "P1"}},
			{PrimaryKey: "price-2", Operation: "update", Payload: map[string]any{"productId": "P1"}},
			{PrimaryKey: "price-3", Operation: "update"},
			{PrimaryKey: "price-4", Operation: "update"},
		},
	})

	require.Len(t, f.ledger.records, 2)
	assert.Equal(t, enqueued{models.EntityProduct, "P1", models.OperationUpdate,
		models.Origin{Context: models.ContextAdminBackend, Actor: "user-1"}}, f.ledger.records[0])
	assert.Equal(t, "P2", f.ledger.records[1].EntityID)
	assert.Equal(t, models.OperationUpdate, f.ledger.records[1].Operation)

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, "product.written", f.notifier.sent[0].Event)
	assert.Equal(t, "product", f.notifier.sent[0].Payload["entityType"])
}

func TestHandle_ParentCascadeOnDeleteUsesCompositeKey(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:   "product_category.deleted",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: map[string]any{"productId": "P1", "categoryId": "C1"}},
			{PrimaryKey: map[string]any{"productId": "P1", "categoryId": "C2"}},
		},
	})

	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, "P1", f.ledger.records[0].EntityID)
	assert.Equal(t, models.OperationUpdate, f.ledger.records[0].Operation)
	assert.Zero(t, f.resolver.calls)
}

func TestHandle_ResolverFaultIsContained(t *testing.T) {
	f := newFixture()
	f.resolver.err = errors.New("host db down")
	before := testutil.ToFloat64(metrics.CaptureFaults.WithLabelValues(models.EntityProductPrice))

	f.d.Handle(context.Background(), Event{
		Name:   "product_price.written",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: "price-1"},
			{PrimaryKey: "price-2", Payload: map[string]any{"productId": "P9"}},
		},
	})

	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, "P9", f.ledger.records[0].EntityID)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CaptureFaults.WithLabelValues(models.EntityProductPrice)))
}

func TestHandle_MediaAssociation(t *testing.T) {
	f := newFixture()
	f.resolver.parents["pm-2"] = "P2"
	f.resolver.media["pm-2"] = "M2"

	f.d.Handle(context.Background(), Event{
		Name:   "product_media.written",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: "pm-1", Operation: "insert", Payload: map[string]any{"productId": "P1", "mediaId": "M1"}},
			{PrimaryKey: "pm-2", Operation: "update"},
			{PrimaryKey: "pm-3", Operation: "insert", Payload: map[string]any{"mediaId": "M1"}},
		},
	})

	var got []string
	for _, r := range f.ledger.records {
		got = append(got, r.EntityType+":"+r.EntityID+":"+string(r.Operation))
	}
	assert.Equal(t, []string{
		"product:P1:update",
		"product:P2:update",
		"media:M1:update",
		"media:M2:update",
	}, got)
}

func TestHandle_MediaAssociationWithoutProduct(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:    "product_media.deleted",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "pm-1", Payload: map[string]any{"mediaId": "M1"}}},
	})

	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, enqueued{models.EntityMedia, "M1", models.OperationUpdate,
		models.Origin{Context: models.ContextAdminBackend, Actor: "user-1"}}, f.ledger.records[0])
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "media.written", f.notifier.sent[0].Event)
}

func TestHandle_MediaUnlinkKeepsMedia(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:   "product_media.deleted",
		Source: adminUser,
		Results: []WriteResult{
			{PrimaryKey: "pm-1", Payload: map[string]any{"productId": "P1", "mediaId": "M1"}},
			{PrimaryKey: "pm-2", Payload: map[string]any{"productId": "P1", "mediaId": "M2"}},
		},
	})

	var got []string
	for _, r := range f.ledger.records {
		got = append(got, r.EntityType+":"+r.EntityID+":"+string(r.Operation))
	}
	assert.Equal(t, []string{
		"product:P1:update",
		"media:M1:update",
		"media:M2:update",
	}, got)
	for _, n := range f.notifier.sent {
		assert.NotEqual(t, "media.deleted", n.Event)
	}
}

func TestHandle_NilResolver(t *testing.T) {
	f := newFixture()
	d := NewDispatcher(f.ledger, f.notifier, f.flags, nil, "cobby", zap.NewNop())

	d.Handle(context.Background(), Event{
		Name:    "product_media.written",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "pm-1", Operation: "insert"}},
	})

	assert.Empty(t, f.ledger.records)
}

func TestHandle_CobbyOriginIsRecordedButNotNotified(t *testing.T) {
	f := newFixture()

	f.d.Handle(context.Background(), Event{
		Name:    "product.written",
		Source:  Source{Type: SourceAdminAPI, IntegrationID: "int-cobby"},
		Results: []WriteResult{{PrimaryKey: "p1", Operation: "update"}},
	})

	require.Len(t, f.ledger.records, 1)
	assert.Equal(t, models.Origin{Context: models.ContextCobby, Actor: "cobby"}, f.ledger.records[0].Origin)
	assert.Empty(t, f.notifier.sent)
}

func TestHandle_EnqueueFailureSkipsNotification(t *testing.T) {
	f := newFixture()
	f.ledger.err = errors.New("disk full")

	f.d.Handle(context.Background(), Event{
		Name:    "unit.written",
		Source:  adminUser,
		Results: []WriteResult{{PrimaryKey: "u1", Operation: "insert"}},
	})

	assert.Empty(t, f.notifier.sent)
}

func TestHandle_PanicIsContained(t *testing.T) {
	f := newFixture()
	f.ledger.panicOn = models.EntityRule
	before := testutil.ToFloat64(metrics.CaptureFaults.WithLabelValues(models.EntityRule))

	assert.NotPanics(t, func() {
		f.d.Handle(context.Background(), Event{
			Name:    "rule.written",
			Source:  adminUser,
			Results: []WriteResult{{PrimaryKey: "r1", Operation: "insert"}},
		})
	})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CaptureFaults.WithLabelValues(models.EntityRule)))
	entries := f.logs.FilterMessage("Error capturing entity event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rule.written", entries[0].ContextMap()["event"])
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want models.Origin
	}{
		{"admin user", Source{Type: SourceAdminAPI, UserID: "u1"}, models.Origin{Context: "admin-backend", Actor: "u1"}},
		{"admin without actor", Source{Type: SourceAdminAPI}, models.Origin{Context: "admin-backend", Actor: "System"}},
		{"known integration", Source{Type: SourceAdminAPI, IntegrationID: "int-cobby"}, models.Origin{Context: "cobby", Actor: "cobby"}},
		{"other integration", Source{Type: SourceAdminAPI, IntegrationID: "int-x"}, models.Origin{Context: "int-x", Actor: "int-x"}},
		{"integration wins over user", Source{Type: SourceAdminAPI, UserID: "u1", IntegrationID: "int-x"}, models.Origin{Context: "int-x", Actor: "int-x"}},
		{"sales channel", Source{Type: SourceSalesChannelAPI}, models.Origin{Context: "api", Actor: "System"}},
		{"system", Source{Type: SourceSystem}, models.Origin{Context: "system", Actor: "System"}},
		{"unknown", Source{Type: "cli"}, models.Origin{Context: "backend", Actor: "System"}},
	}

	f := newFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.d.Classify(context.Background(), tt.src))
		})
	}
	assert.Equal(t, 1, f.logs.FilterMessage("Unknown context source type encountered").Len())
}

func TestClassify_UnresolvedIntegration(t *testing.T) {
	f := newFixture()
	f.ledger.integration = nil

	got := f.d.Classify(context.Background(), Source{Type: SourceAdminAPI, IntegrationID: "int-cobby"})

	assert.Equal(t, models.Origin{Context: "int-cobby", Actor: "int-cobby"}, got)
}
