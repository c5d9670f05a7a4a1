package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gostock/domain/core"
	"gostock/domain/record"
	"gostock/domain/stock"
	"gostock/internal"
	"gostock/internal/errors"
	"gostock/internal/session"
	"gostock/ports"
)

// StockService runs the load/append/save/export flow for one session at a time
type StockService struct {
	store   ports.RecordStorePort
	dataDir string
	logger  *internal.Logger
}

// NewStockService creates a stock service rooted at dataDir
func NewStockService(store ports.RecordStorePort, dataDir string, logger *internal.Logger) *StockService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StockService{
		store:   store,
		dataDir: dataDir,
		logger:  logger,
	}
}

// ResolvePath maps a user-entered file name into the data directory.
// Only the base name is kept so a form value cannot point elsewhere.
func (s *StockService) ResolvePath(fileName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", errors.InvalidInput(fmt.Sprintf("invalid file name %q", fileName))
	}
	return filepath.Join(s.dataDir, name), nil
}

// Check probes the session's file. An existing file is loaded and its header
// becomes the active schema, overriding the declared column names.
func (s *StockService) Check(ctx context.Context, sess *session.Session) error {
	sess.Reset()

	path, err := s.ResolvePath(sess.FileName)
	if err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "failed to check %s", sess.FileName)
	}
	if !exists {
		sess.State = stock.StateFileAbsent
		sess.Notice = fmt.Sprintf("The file %s does not exist. Please create a new file.", sess.FileName)
		return nil
	}
	sess.State = stock.StateFileExists

	return s.load(ctx, sess, path)
}

func (s *StockService) load(ctx context.Context, sess *session.Session, path string) error {
	declared := sess.DeclaredSchema()
	table, err := s.store.Load(ctx, path, declared)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", sess.FileName)
	}

	state, err := stock.Transition(sess.State, stock.StateLoaded)
	if err != nil {
		return errors.Wrap(err, "failed to load")
	}
	sess.State = state
	sess.Table = &table

	// The file header wins; the mismatch is only reported.
	sess.SchemaOverridden = !table.Schema().Equal(declared)
	if sess.SchemaOverridden {
		s.logger.Debug("[StockService] %s header %v overrides declared columns %v", sess.FileName, table.Schema(), declared)
	}
	return nil
}

// Create writes a header-only file from the declared columns.
// The file is probed again first and an existing file is never touched.
func (s *StockService) Create(ctx context.Context, sess *session.Session) error {
	if err := s.Check(ctx, sess); err != nil {
		return err
	}
	if _, err := stock.Transition(sess.State, stock.StateFileEmptyExists); err != nil {
		return errors.Wrapf(err, "cannot create %s", sess.FileName)
	}

	schema, err := record.NewSchema(sess.DeclaredSchema())
	if err != nil {
		return errors.Wrap(err, "invalid column names")
	}

	path, err := s.ResolvePath(sess.FileName)
	if err != nil {
		return err
	}
	if err := s.store.CreateEmpty(ctx, path, schema); err != nil {
		return errors.Wrapf(err, "failed to create %s", sess.FileName)
	}

	s.logger.Info("[StockService] created %s with columns %v", path, schema)
	sess.State = stock.StateFileEmptyExists
	sess.Notice = fmt.Sprintf("Created %s.", sess.FileName)
	return nil
}

// Submit appends one item built from fields and runs load -> append -> save -> export.
// Fields outside the file's schema are ignored; missing ones are stored empty.
func (s *StockService) Submit(ctx context.Context, sess *session.Session, fields map[string]string) error {
	if !sess.State.CanSubmit() {
		if err := s.Check(ctx, sess); err != nil {
			return err
		}
	}
	if !sess.State.CanSubmit() {
		return errors.Wrap(fmt.Errorf("%w: %s has no loaded table", core.ErrInvalidTransition, sess.FileName), "cannot add item")
	}
	sess.Export = nil

	path, err := s.ResolvePath(sess.FileName)
	if err != nil {
		return err
	}

	// Always reload so the append applies to what is on disk now.
	table, err := s.store.Load(ctx, path, sess.ActiveSchema())
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", sess.FileName)
	}

	next, err := table.Append(record.DraftFromMap(table.Schema(), fields))
	if err != nil {
		return errors.Wrap(err, "failed to add item")
	}
	if sess.State, err = stock.Transition(sess.State, stock.StateAppended); err != nil {
		return errors.Wrap(err, "failed to add item")
	}
	sess.Table = &next

	if err := s.store.Save(ctx, next, path); err != nil {
		return errors.Wrapf(err, "failed to save %s", sess.FileName)
	}
	data, err := s.store.Export(ctx, next)
	if err != nil {
		return errors.Wrap(err, "failed to export")
	}

	if sess.State, err = stock.Transition(sess.State, stock.StateSavedExported); err != nil {
		return errors.Wrap(err, "failed to export")
	}
	sess.Export = data
	sess.Notice = "New item added to the stock!"

	s.logger.Info("[StockService] appended row %d to %s", next.Len(), path)
	return nil
}
