package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/reservation/internal/errs"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

const (
	reservationTableName = `reservation`
	roomTableName        = `room`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	reservationColumns = []string{
		"id", "room_id", "user_id", "from_date", "to_date",
		"price_per_day", "total_price", "status", "create_date", "update_date",
	}
	returning = "RETURNING " + strings.Join(reservationColumns, ", ")
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	pool *pgxpool.Pool
	db   querier
	log  *zap.Logger
	now  func() time.Time
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		pool: db,
		db:   db,
		log:  log.Named("repo"),
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (r *repository) withTx(tx pgx.Tx) *repository {
	return &repository{db: tx, log: r.log, now: r.now}
}

func (r *repository) InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	if r.pool == nil {
		return fn(ctx, r)
	}
	var fnErr error
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		fnErr = fn(ctx, r.withTx(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return r.mapErr("InTx", err)
	}
	return nil
}

func (r *repository) Insert(ctx context.Context, rsv model.Reservation) (model.Reservation, error) {
	q, args, err := qb.Insert(reservationTableName).
		Columns(reservationColumns...).
		Values(rsv.ID, rsv.RoomID, rsv.UserID, rsv.FromDate, rsv.ToDate,
			rsv.PricePerDay, rsv.TotalPrice, rsv.Status, rsv.CreateDate, rsv.UpdateDate).
		Suffix(returning).
		ToSql()
	if err != nil {
		return model.Reservation{}, errs.Persistence("Insert", err)
	}
	res, err := r.queryOne(ctx, q, args...)
	if err != nil {
		r.log.Debug("Insert", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, r.mapErr("Insert", err)
	}
	return res, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (model.Reservation, error) {
	if !validID(id) {
		return model.Reservation{}, errs.ErrNotFound
	}
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, errs.Persistence("FindByID", err)
	}
	res, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return model.Reservation{}, r.mapErr("FindByID", err)
	}
	return res, nil
}

func (r *repository) Find(ctx context.Context, f Filter) ([]model.Reservation, error) {
	q, args, err := findQuery(f).ToSql()
	if err != nil {
		return nil, errs.Persistence("Find", err)
	}
	r.log.Debug("Find", zap.String("q", q), zap.Any("args", args))
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, r.mapErr("Find", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Reservation])
	if err != nil {
		return nil, r.mapErr("Find", err)
	}
	return items, nil
}

func (r *repository) Exists(ctx context.Context, f Filter) (bool, error) {
	q, args, err := existsQuery(f).ToSql()
	if err != nil {
		return false, errs.Persistence("Exists", err)
	}
	var one int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, r.mapErr("Exists", err)
	}
	return true, nil
}

func (r *repository) Update(ctx context.Context, rsv model.Reservation) (model.Reservation, error) {
	if !validID(rsv.ID) {
		return model.Reservation{}, errs.ErrNotFound
	}
	q, args, err := qb.Update(reservationTableName).
		SetMap(map[string]interface{}{
			"from_date":     rsv.FromDate,
			"to_date":       rsv.ToDate,
			"price_per_day": rsv.PricePerDay,
			"total_price":   rsv.TotalPrice,
			"status":        rsv.Status,
			"update_date":   r.now(),
		}).
		Where(sq.Eq{"id": rsv.ID}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return model.Reservation{}, errs.Persistence("Update", err)
	}
	res, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return model.Reservation{}, r.mapErr("Update", err)
	}
	return res, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Reservation, error) {
	if !validID(id) {
		return model.Reservation{}, errs.ErrNotFound
	}
	q, args, err := qb.Update(reservationTableName).
		Set("status", status).
		Set("update_date", r.now()).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return model.Reservation{}, errs.Persistence("UpdateStatus", err)
	}
	res, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return model.Reservation{}, r.mapErr("UpdateStatus", err)
	}
	return res, nil
}

func (r *repository) UpdateManyStatus(ctx context.Context, ids []string, status model.Status) (int64, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}
	q, args, err := qb.Update(reservationTableName).
		Set("status", status).
		Set("update_date", r.now()).
		Where(sq.Eq{"id": valid}).
		ToSql()
	if err != nil {
		return 0, errs.Persistence("UpdateManyStatus", err)
	}
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return 0, r.mapErr("UpdateManyStatus", err)
	}
	return tag.RowsAffected(), nil
}

func (r *repository) DeleteByID(ctx context.Context, id string) (model.Reservation, error) {
	if !validID(id) {
		return model.Reservation{}, errs.ErrNotFound
	}
	q, args, err := qb.Delete(reservationTableName).
		Where(sq.Eq{"id": id}).
		Suffix(returning).
		ToSql()
	if err != nil {
		return model.Reservation{}, errs.Persistence("DeleteByID", err)
	}
	res, err := r.queryOne(ctx, q, args...)
	if err != nil {
		return model.Reservation{}, r.mapErr("DeleteByID", err)
	}
	return res, nil
}

func (r *repository) queryOne(ctx context.Context, q string, args ...interface{}) (model.Reservation, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Reservation{}, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Reservation])
}

// mapErr turns driver errors into the store's error taxonomy. The exclusion
// constraint on accepted intervals surfaces as a conflict.
func (r *repository) mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return errs.NewConflict(errs.MsgOverlapExists)
		case pgerrcode.ForeignKeyViolation:
			return errs.NewValidation(errs.Field("roomId", "room does not exist"))
		case pgerrcode.CheckViolation:
			return errs.NewValidation(errs.Field("", pgErr.Message))
		}
	}
	r.log.Error(op, zap.Error(err))
	return errs.Persistence(op, err)
}

func findQuery(f Filter) sq.SelectBuilder {
	q := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(f.where()).
		OrderBy("from_date", "create_date")
	if f.ForUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func existsQuery(f Filter) sq.SelectBuilder {
	return qb.Select("1").
		From(reservationTableName).
		Where(f.where()).
		Limit(1)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type roomRepository struct {
	db  querier
	log *zap.Logger
}

func NewRoomRepository(db *pgxpool.Pool, log *zap.Logger) *roomRepository {
	return &roomRepository{db: db, log: log.Named("rooms")}
}

func (r *roomRepository) GetRoom(ctx context.Context, id string) (model.Room, error) {
	q, args, err := qb.Select("id", "name", "owner_id", "price_per_day").
		From(roomTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Room{}, errs.Persistence("GetRoom", err)
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Room{}, errs.Persistence("GetRoom", err)
	}
	room, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Room])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Room{}, errs.ErrNotFound
		}
		r.log.Error("GetRoom", zap.Error(err))
		return model.Room{}, errs.Persistence("GetRoom", err)
	}
	return room, nil
}
