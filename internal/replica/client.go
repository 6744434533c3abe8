package replica

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// ErrUnavailable marks connectivity failures against the replica store, as
// opposed to marshalling or query errors. The bulk resync command aborts on
// it instead of retrying record by record.
var ErrUnavailable = errors.New("replica store unavailable")

// Replica tables. Products and warehouses are keyed by business code,
// orders by their relational id.
const (
	TableProducts   = "productos"
	TableWarehouses = "bodegas"
	TableOrders     = "pedidos"
)

// Every replica call is bounded; a slow replica must never stall the
// relational write path beyond this.
const requestTimeout = 5 * time.Second

// Store is the document replica abstraction the sync engine writes through.
// Upserts are full-document replacements: the previous document is
// discarded entirely, never patched.
type Store interface {
	UpsertProduct(ctx context.Context, doc ProductDocument) error
	UpsertWarehouse(ctx context.Context, doc WarehouseDocument) error
	UpsertOrder(ctx context.Context, doc OrderDocument) error
	DeleteProduct(ctx context.Context, code string) error
	DeleteOrder(ctx context.Context, id uint) error
	RecentOrders(ctx context.Context, limit int) ([]OrderDocument, error)
	RecentProducts(ctx context.Context, limit int) ([]ProductDocument, error)
	Ping(ctx context.Context) error
}

// surrealStore speaks the SurrealDB RPC protocol over a single lazily
// dialed connection. A failed call drops the connection so the next call
// redials; the service starts fine with the replica down.
type surrealStore struct {
	url       string
	namespace string
	database  string
	user      string
	pass      string
	logger    *logrus.Entry

	mu sync.Mutex
	db *surrealdb.DB
}

// NewSurrealStore creates a Store backed by a SurrealDB endpoint. The URL
// may be given as http(s); it is rewritten to the ws(s) RPC endpoint.
func NewSurrealStore(url, namespace, database, user, pass string, logger *logrus.Logger) Store {
	return &surrealStore{
		url:       rpcURL(url),
		namespace: namespace,
		database:  database,
		user:      user,
		pass:      pass,
		logger:    logger.WithField("component", "replica"),
	}
}

// rpcURL rewrites a base URL to the websocket RPC endpoint SurrealDB
// expects.
func rpcURL(url string) string {
	switch {
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	}
	if !strings.HasSuffix(url, "/rpc") {
		url = strings.TrimSuffix(url, "/") + "/rpc"
	}
	return url
}

func (s *surrealStore) UpsertProduct(ctx context.Context, doc ProductDocument) error {
	return s.replace(ctx, TableProducts, doc.Code, doc)
}

func (s *surrealStore) UpsertWarehouse(ctx context.Context, doc WarehouseDocument) error {
	return s.replace(ctx, TableWarehouses, doc.Code, doc)
}

func (s *surrealStore) UpsertOrder(ctx context.Context, doc OrderDocument) error {
	return s.replace(ctx, TableOrders, strconv.FormatUint(uint64(doc.PostgresID), 10), doc)
}

func (s *surrealStore) DeleteProduct(ctx context.Context, code string) error {
	_, err := s.call(ctx, func(db *surrealdb.DB) (interface{}, error) {
		return db.Delete(recordID(TableProducts, code))
	})
	return err
}

func (s *surrealStore) DeleteOrder(ctx context.Context, id uint) error {
	_, err := s.call(ctx, func(db *surrealdb.DB) (interface{}, error) {
		return db.Delete(recordID(TableOrders, strconv.FormatUint(uint64(id), 10)))
	})
	return err
}

func (s *surrealStore) RecentOrders(ctx context.Context, limit int) ([]OrderDocument, error) {
	statement := fmt.Sprintf("SELECT * FROM %s ORDER BY fecha_creacion DESC LIMIT $limit;", TableOrders)
	var docs []OrderDocument
	if err := s.query(ctx, statement, map[string]interface{}{"limit": limit}, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *surrealStore) RecentProducts(ctx context.Context, limit int) ([]ProductDocument, error) {
	statement := fmt.Sprintf("SELECT * FROM %s ORDER BY sync_timestamp DESC LIMIT $limit;", TableProducts)
	var docs []ProductDocument
	if err := s.query(ctx, statement, map[string]interface{}{"limit": limit}, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *surrealStore) Ping(ctx context.Context) error {
	_, err := s.call(ctx, func(db *surrealdb.DB) (interface{}, error) {
		return db.Query("INFO FOR DB;", nil)
	})
	return err
}

func recordID(table, id string) string {
	return table + ":" + id
}

// replace writes a full document at table:id. The RPC update method runs
// UPDATE ... CONTENT, which discards any previous content and creates the
// record when missing.
func (s *surrealStore) replace(ctx context.Context, table, id string, doc interface{}) error {
	payload, err := toPayload(doc)
	if err != nil {
		return err
	}
	_, err = s.call(ctx, func(db *surrealdb.DB) (interface{}, error) {
		return db.Update(recordID(table, id), payload)
	})
	return err
}

// toPayload converts a typed document to the generic map the RPC client
// sends, keeping the wire field names from the json tags.
func toPayload(doc interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode replica document: %w", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("failed to encode replica document: %w", err)
	}
	return payload, nil
}

// query runs a raw statement and decodes the first result set into out.
func (s *surrealStore) query(ctx context.Context, statement string, vars map[string]interface{}, out interface{}) error {
	raw, err := s.call(ctx, func(db *surrealdb.DB) (interface{}, error) {
		return db.Query(statement, vars)
	})
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to re-encode replica result: %w", err)
	}
	var results []struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(encoded, &results); err != nil {
		return fmt.Errorf("failed to decode replica result: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("replica query returned no result set")
	}
	if results[0].Status != "OK" {
		return fmt.Errorf("replica query failed: status %s", results[0].Status)
	}
	return json.Unmarshal(results[0].Result, out)
}

// session returns the live connection, dialing and authenticating on first
// use or after a dropped connection.
func (s *surrealStore) session() (*surrealdb.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := surrealdb.New(s.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := db.Signin(map[string]interface{}{"user": s.user, "pass": s.pass}); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if _, err := db.Use(s.namespace, s.database); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.WithField("url", s.url).Debug("Connected to replica store")
	s.db = db
	return db, nil
}

// dropSession closes the connection so the next call redials.
func (s *surrealStore) dropSession() {
	s.mu.Lock()
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	s.mu.Unlock()
}

type callResult struct {
	res interface{}
	err error
}

// call bounds one RPC invocation, dialing included, with the request
// timeout. Any failure tears the connection down and reports the store as
// unavailable.
func (s *surrealStore) call(ctx context.Context, fn func(db *surrealdb.DB) (interface{}, error)) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	done := make(chan callResult, 1)
	go func() {
		db, err := s.session()
		if err != nil {
			done <- callResult{err: err}
			return
		}
		res, err := fn(db)
		done <- callResult{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		s.dropSession()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	case r := <-done:
		if r.err != nil {
			s.dropSession()
			if errors.Is(r.err, ErrUnavailable) {
				return nil, r.err
			}
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, r.err)
		}
		return r.res, nil
	}
}
