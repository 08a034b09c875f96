package repository

import (
	"context"
	"errors"

	"vidhub-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ownedRecord 可被所有者校验的模型指针
type ownedRecord[T any] interface {
	*T
	model.Owned
}

// authorizeAndMutate 在同一事务内加行锁读取记录、校验所有者并执行变更，
// 校验与写入之间不会被其他写请求插入。
func authorizeAndMutate[T any, P ownedRecord[T]](ctx context.Context, db *gorm.DB, id, actorID int64, notFound error, mutate func(tx *gorm.DB, rec P) error) (P, error) {
	var rec T
	p := P(&rec)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound
			}
			return err
		}
		if err := model.AssertOwner(p, actorID); err != nil {
			return err
		}
		return mutate(tx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// saveFields 只写回指定列
func saveFields(tx *gorm.DB, rec interface{}, columns ...string) error {
	return tx.Model(rec).Select(columns).Updates(rec).Error
}

// toggleEdge 原子切换一条关系边：存在则删除，不存在则插入。
// 唯一索引保证并发插入不会产生重复边，返回切换后的状态。
func toggleEdge(ctx context.Context, db *gorm.DB, edge interface{}, query string, args ...interface{}) (bool, error) {
	var active bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(query, args...).Delete(edge)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			active = false
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error; err != nil {
			return err
		}
		active = true
		return nil
	})
	return active, err
}

// existsBy 判断满足条件的记录是否存在
func existsBy(ctx context.Context, db *gorm.DB, m interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(m).Where(query, args...).Limit(1).Count(&count).Error
	return count > 0, err
}
