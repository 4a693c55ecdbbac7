package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alimikegami/quadraplay/payment-service/internal/domain"
	"github.com/alimikegami/quadraplay/payment-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const selectPayment = `SELECT order_id, transaction_id, status, transaction_status, payment_type, gross_amount,
	fraud_status, settlement_time, expiry_time, va_numbers, payment_code, created_at, updated_at
	FROM payments`

// Optional gateway fields keep their stored value when the update leaves them empty.
const updatePayment = `UPDATE payments SET
	status = :status,
	transaction_status = :transaction_status,
	transaction_id = COALESCE(NULLIF(:transaction_id, ''), transaction_id),
	payment_type = COALESCE(NULLIF(:payment_type, ''), payment_type),
	gross_amount = COALESCE(NULLIF(:gross_amount, ''), gross_amount),
	fraud_status = COALESCE(NULLIF(:fraud_status, ''), fraud_status),
	settlement_time = COALESCE(NULLIF(:settlement_time, ''), settlement_time),
	expiry_time = COALESCE(NULLIF(:expiry_time, ''), expiry_time),
	va_numbers = COALESCE(NULLIF(:va_numbers, ''), va_numbers),
	payment_code = COALESCE(NULLIF(:payment_code, ''), payment_code),
	updated_at = :updated_at
	WHERE order_id = :order_id`

const insertPayment = `INSERT INTO payments (order_id, status, gross_amount, created_at, updated_at)
	VALUES (:order_id, :status, :gross_amount, :created_at, :updated_at)
	ON CONFLICT (order_id) DO NOTHING`

type PaymentRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreatePaymentRepository(db *sqlx.DB) PaymentRepository {
	return &PaymentRepositoryImpl{
		db: db,
	}
}

func (r *PaymentRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *PaymentRepositoryImpl) CreatePayment(ctx context.Context, data domain.Payment) (err error) {
	_, err = sqlx.NamedExecContext(ctx, r.ext(), insertPayment, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreatePayment").Msg("")
		return err
	}

	return nil
}

func (r *PaymentRepositoryImpl) GetPaymentByOrderID(ctx context.Context, orderID string) (data domain.Payment, err error) {
	query := selectPayment + " WHERE order_id = $1"
	if r.tx != nil {
		query += " FOR UPDATE"
	}

	err = sqlx.GetContext(ctx, r.ext(), &data, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, errs.ErrPaymentNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPaymentByOrderID").Msg("")
		return data, err
	}

	return
}

func (r *PaymentRepositoryImpl) UpdatePayment(ctx context.Context, orderID string, data domain.PaymentUpdate) (err error) {
	data.OrderID = orderID

	res, err := sqlx.NamedExecContext(ctx, r.ext(), updatePayment, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdatePayment").Msg("")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdatePayment").Msg("")
		return err
	}
	if affected == 0 {
		return errs.ErrPaymentNotFound
	}

	return nil
}

func (r *PaymentRepositoryImpl) GetStalePendingPayments(ctx context.Context, updatedBefore int64, limit int) (data []domain.Payment, err error) {
	query := selectPayment + " WHERE status = $1 AND updated_at < $2 ORDER BY updated_at ASC LIMIT $3"

	err = sqlx.SelectContext(ctx, r.ext(), &data, query, string(domain.PaymentStatusPending), updatedBefore, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetStalePendingPayments").Msg("")
		return nil, err
	}

	return
}

func (r *PaymentRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo PaymentRepository) error) (err error) {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	txRepo := &PaymentRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, txRepo)

	return err
}
