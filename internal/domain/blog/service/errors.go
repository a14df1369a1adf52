package service

import "errors"

var (
	// ErrNotFound 目标资源不存在
	ErrNotFound = errors.New("not found")

	// ErrForbidden 授权拒绝，不携带具体原因
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateRating 同一作者对同一文章的第二次评分
	ErrDuplicateRating = errors.New("you cannot rate the same post twice")

	// ErrInvalidRating 评分超出 [1,5]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
