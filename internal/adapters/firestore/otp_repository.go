package firestore

import (
	"context"
	"crypto/subtle"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/quizforge/training-service/internal/domain"
)

// OTPRepository stores one OTP record per (email, purpose) key. Put is a
// plain Set, which is exactly the overwrite semantics supersession needs.
type OTPRepository struct {
	client *firestore.Client
}

func NewOTPRepository(client *firestore.Client) *OTPRepository {
	return &OTPRepository{client: client}
}

func (r *OTPRepository) doc(email string, purpose domain.OTPPurpose) *firestore.DocumentRef {
	return r.client.Collection(otpCollection).Doc(domain.OTPKey(email, purpose))
}

func (r *OTPRepository) Put(ctx context.Context, record domain.OTPRecord) error {
	_, err := r.doc(record.Email, record.Purpose).Set(ctx, toOTPDoc(record))
	return mapStoreError(err)
}

// Consume flips the consumed flag inside a transaction so that concurrent
// verifies of the same record serialize: exactly one sees consumed=false.
func (r *OTPRepository) Consume(ctx context.Context, email string, purpose domain.OTPPurpose, codeHash string, now time.Time) error {
	docRef := r.doc(email, purpose)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		var d otpDoc
		if err := snap.DataTo(&d); err != nil {
			return err
		}
		record := fromOTPDoc(d)
		if record.Expired(now) {
			return domain.ErrExpired
		}
		if record.Consumed {
			return domain.ErrAlreadyUsed
		}
		if subtle.ConstantTimeCompare([]byte(codeHash), []byte(record.CodeHash)) != 1 {
			return domain.ErrInvalidCode
		}
		return tx.Update(docRef, []firestore.Update{{Path: "consumed", Value: true}})
	})
	return mapStoreError(err)
}

// DeleteExpired removes up to limit records whose expiry is before the
// cutoff. It is best-effort housekeeping; reads never trust a record that
// is past expiry.
func (r *OTPRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	iter := r.client.Collection(otpCollection).
		Where("expiresAt", "<", before).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, mapStoreError(err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, mapStoreError(err)
		}
		deleted++
	}
	return deleted, nil
}
