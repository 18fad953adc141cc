package models

import "time"

// Stage — шаг производственного процесса. Допустимость переходов
// проверяет бэкенд; здесь только словарь значений.
type Stage string

const (
	StageBidding      Stage = "bidding"
	StageInProduction Stage = "in_production"
	StageAwaitQA      Stage = "await_qa"
	StageCompleted    Stage = "completed"
	StageMovedToStock Stage = "moved_to_stock"
	StageRework       Stage = "rework"
	StageRejected     Stage = "rejected"
)

// Stages — все известные стадии в порядке отображения.
var Stages = []Stage{
	StageBidding,
	StageInProduction,
	StageAwaitQA,
	StageCompleted,
	StageMovedToStock,
	StageRework,
	StageRejected,
}

// Valid сообщает, известна ли стадия.
func (s Stage) Valid() bool {
	for _, st := range Stages {
		if st == s {
			return true
		}
	}

	return false
}

// Production — партия изделий в пошиве. Стадию приходящей записи не
// сверяем со словарём: бэкенд может завести новую раньше, чем шлюз.
type Production struct {
	ID         string     `json:"id" validate:"required"`
	ProductID  string     `json:"productId" validate:"required"`
	CustomerID string     `json:"customerId,omitempty"`
	AssignedTo string     `json:"assignedTo,omitempty"`
	Quantity   int        `json:"quantity"`
	Stage      Stage      `json:"stage" validate:"required"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Note       string     `json:"note,omitempty"`
}

type ProductionInput struct {
	ProductID  string     `json:"productId,omitempty" validate:"required"`
	CustomerID string     `json:"customerId,omitempty"`
	AssignedTo string     `json:"assignedTo,omitempty"`
	Quantity   int        `json:"quantity" validate:"gt=0"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Note       string     `json:"note,omitempty" validate:"omitempty,max=500"`
}

// StageTransition — запрос на перевод партии в другую стадию.
type StageTransition struct {
	Stage   Stage  `json:"stage" validate:"required,stage"`
	StaffID string `json:"staffId,omitempty"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
