package training

import "github.com/m04kA/SMC-TrainingScheduler/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
