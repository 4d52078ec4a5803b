package mock

import (
	"context"

	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.BookService = (*BookService)(nil)

// BookService is a mock implementation of scrapbook.BookService.
type BookService struct {
	CreateBookFn   func(ctx context.Context, book *scrapbook.Book) error
	FindBookByIDFn func(ctx context.Context, id string) (*scrapbook.Book, error)
	FindBooksFn    func(ctx context.Context, filter scrapbook.BookFilter) ([]*scrapbook.Book, error)
	DeleteBookFn   func(ctx context.Context, id string) error
}

func (s *BookService) CreateBook(ctx context.Context, book *scrapbook.Book) error {
	return s.CreateBookFn(ctx, book)
}

func (s *BookService) FindBookByID(ctx context.Context, id string) (*scrapbook.Book, error) {
	return s.FindBookByIDFn(ctx, id)
}

func (s *BookService) FindBooks(ctx context.Context, filter scrapbook.BookFilter) ([]*scrapbook.Book, error) {
	return s.FindBooksFn(ctx, filter)
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.DeleteBookFn(ctx, id)
}

var _ scrapbook.JobService = (*JobService)(nil)

// JobService is a mock implementation of scrapbook.JobService.
type JobService struct {
	CreateJobFn   func(ctx context.Context, job *scrapbook.JobPosting) error
	FindJobByIDFn func(ctx context.Context, id string) (*scrapbook.JobPosting, error)
	FindJobsFn    func(ctx context.Context, filter scrapbook.JobFilter) ([]*scrapbook.JobPosting, error)
	DeleteJobFn   func(ctx context.Context, id string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *scrapbook.JobPosting) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*scrapbook.JobPosting, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter scrapbook.JobFilter) ([]*scrapbook.JobPosting, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}
