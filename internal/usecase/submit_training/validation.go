package submit_training

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
	return v
}

// validatePhone номер с кодом города: 8-14 цифр после удаления остальных символов
func validatePhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= domain.MinPhoneDigits && digits <= domain.MaxPhoneDigits
}

// parseRequest валидирует форму и собирает из неё запись на тренинг
func parseRequest(req *Request, loc *time.Location) (*submission, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidationError(err))
	}

	if strings.TrimSpace(req.Company) == "" {
		return nil, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}

	date, err := types.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slot, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	participants := make([]domain.Participant, 0, len(req.Participants))
	for i, p := range req.Participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: participant %d has empty name", ErrInvalidInput, i+1)
		}
		participants = append(participants, domain.Participant{
			Name:  name,
			Email: strings.TrimSpace(p.Email),
		})
	}

	options, err := parseOptions(req.Options)
	if err != nil {
		return nil, err
	}

	phones := make([]string, 0, len(req.Phones))
	for _, phone := range req.Phones {
		phones = append(phones, strings.TrimSpace(phone))
	}

	return &submission{
		date: date,
		slot: slot,
		training: &domain.Training{
			Company:          strings.TrimSpace(req.Company),
			TrainingType:     domain.TrainingType(req.TrainingType),
			Participants:     participants,
			Phones:           phones,
			RecordingConsent: req.RecordingConsent == "yes",
			Options:          options,
			ScheduledAt:      date.At(slot, loc),
			Status:           domain.StatusScheduled,
		},
	}, nil
}

// parseOptions проверяет ключи и допустимые уровни разделов
func parseOptions(inputs []OptionInput) ([]domain.OptionSelection, error) {
	seen := make(map[domain.OptionKey]struct{}, len(inputs))
	options := make([]domain.OptionSelection, 0, len(inputs))

	for _, in := range inputs {
		key := domain.OptionKey(in.Key)
		def, ok := domain.LookupOption(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown option %q", ErrInvalidInput, in.Key)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: option %q is selected twice", ErrInvalidInput, in.Key)
		}
		seen[key] = struct{}{}

		level, err := domain.ParseSelectionLevel(in.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: option %q: %v", ErrInvalidInput, in.Key, err)
		}
		if !def.Allows(level) {
			return nil, fmt.Errorf("%w: option %q does not accept level %q", ErrInvalidInput, in.Key, in.Level)
		}

		options = append(options, domain.OptionSelection{Key: key, Level: level})
	}

	return options, nil
}

// validateDateRules проверяет дату и слот по расписанию
func validateDateRules(schedule domain.Schedule, date types.Date, slot types.TimeString, now time.Time) error {
	today := schedule.Today(now)

	if date.Before(today) {
		return ErrDateInPast
	}
	if date == today && !date.At(slot, schedule.Loc()).After(now) {
		return fmt.Errorf("%w: slot %s has already started", ErrDateInPast, slot)
	}

	if !schedule.IsEligibleWeekday(date) {
		return fmt.Errorf("%w: %s", ErrWeekdayNotAvailable, date.Weekday())
	}

	if today.DaysUntil(date) > schedule.BookingHorizonDays {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.BookingHorizonDays)
	}

	if !schedule.HasSlot(slot) {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, slot)
	}

	return nil
}

func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
