package training

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/psqlbuilder"
)

const (
	trainingsTable = "trainings"
	optionsTable   = "training_options"
)

// Repository репозиторий записей на тренинг (основное хранилище)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись на тренинг и заполняет ID и CreatedAt.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, t *domain.Training) (*domain.Training, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	names := make([]string, len(t.Participants))
	emails := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		names[i] = p.Name
		emails[i] = p.Email
	}

	query, args, err := psqlbuilder.Insert(trainingsTable).
		Columns(
			"company",
			"training_type",
			"participant_names",
			"participant_emails",
			"phones",
			"recording_consent",
			"scheduled_at",
			"status",
		).
		Values(
			t.Company,
			t.TrainingType,
			pq.Array(names),
			pq.Array(emails),
			pq.Array(t.Phones),
			t.RecordingConsent,
			t.ScheduledAt,
			t.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// CreateOptions сохраняет выбранные разделы тренинга
func (r *Repository) CreateOptions(ctx context.Context, trainingID int64, options []domain.OptionSelection) error {
	if len(options) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert(optionsTable).Columns("training_id", "option_key", "level")
	for _, o := range options {
		builder = builder.Values(trainingID, o.Key, int(o.Level))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateOptions - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateOptions - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает запись на тренинг вместе с разделами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Training, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(trainingColumns()...).
		From(trainingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTraining(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	if err := r.attachOptions(ctx, []*domain.Training{t}); err != nil {
		return nil, err
	}

	return t, nil
}

// List возвращает записи по фильтру, отсортированные по времени тренинга
func (r *Repository) List(ctx context.Context, filter domain.TrainingsFilter) ([]*domain.Training, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(trainingColumns()...).
		From(trainingsTable).
		OrderBy("scheduled_at ASC", "id ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"scheduled_at": *filter.To})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	trainings := make([]*domain.Training, 0)
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		trainings = append(trainings, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachOptions(ctx, trainings); err != nil {
		return nil, err
	}

	return trainings, nil
}

// ListAll возвращает все записи в узком виде для расчета занятости
func (r *Repository) ListAll(ctx context.Context) ([]domain.BookingRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "scheduled_at").
		From(trainingsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.BookingRecord, 0)
	for rows.Next() {
		var (
			id          int64
			scheduledAt sql.NullTime
		)
		if err := rows.Scan(&id, &scheduledAt); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}

		record := domain.BookingRecord{ID: strconv.FormatInt(id, 10)}
		if scheduledAt.Valid {
			record.ScheduledAt = domain.FormatScheduledAt(scheduledAt.Time)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

func (r *Repository) attachOptions(ctx context.Context, trainings []*domain.Training) error {
	if len(trainings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	byID := make(map[int64]*domain.Training, len(trainings))
	ids := make([]int64, 0, len(trainings))
	for _, t := range trainings {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	query, args, err := psqlbuilder.Select("training_id", "option_key", "level").
		From(optionsTable).
		Where("training_id = ANY(?)", pq.Array(ids)).
		OrderBy("training_id ASC", "option_key ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachOptions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachOptions - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			trainingID int64
			key        string
			level      int
		)
		if err := rows.Scan(&trainingID, &key, &level); err != nil {
			return fmt.Errorf("%w: attachOptions - scan row: %v", ErrScanRow, err)
		}
		if t, ok := byID[trainingID]; ok {
			t.Options = append(t.Options, domain.OptionSelection{
				Key:   domain.OptionKey(key),
				Level: domain.SelectionLevel(level),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachOptions - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTraining(row rowScanner) (*domain.Training, error) {
	var (
		t      domain.Training
		names  []string
		emails []string
	)

	err := row.Scan(
		&t.ID,
		&t.Company,
		&t.TrainingType,
		pq.Array(&names),
		pq.Array(&emails),
		pq.Array(&t.Phones),
		&t.RecordingConsent,
		&t.ScheduledAt,
		&t.Status,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Participants = make([]domain.Participant, len(names))
	for i, name := range names {
		t.Participants[i].Name = name
		if i < len(emails) {
			t.Participants[i].Email = emails[i]
		}
	}

	return &t, nil
}

func trainingColumns() []string {
	return []string{
		"id",
		"company",
		"training_type",
		"participant_names",
		"participant_emails",
		"phones",
		"recording_consent",
		"scheduled_at",
		"status",
		"created_at",
	}
}
