package client

import "sync"

// Continuation — продолжение запроса, ожидающего итог обновления токена.
// Ровно одно из token/err значимо.
type Continuation func(token string, err error)

// Coordinator гарантирует не более одного обновления токена одновременно.
//
// Первый пришедший с 401 становится лидером и выполняет обновление;
// остальные ставят свои продолжения в очередь и ждут Settle. Settle
// вызывает продолжения строго в порядке постановки (FIFO) и сбрасывает
// флаг обновления. Нулевое значение готово к работе.
type Coordinator struct {
	mu         sync.Mutex
	refreshing bool
	queue      []Continuation
}

// NewCoordinator — конструктор для явной инъекции в клиент.
func NewCoordinator() *Coordinator { return &Coordinator{} }

// BeginOrJoin возвращает true, если вызывающий стал лидером обновления.
// Иначе cont ставится в очередь и будет вызван из Settle.
func (c *Coordinator) BeginOrJoin(cont Continuation) (leader bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.refreshing {
		c.refreshing = true
		return true
	}

	c.queue = append(c.queue, cont)
	return false
}

// Settle завершает текущее обновление: снимает флаг и разрешает (token)
// или отклоняет (err) все ожидающие продолжения в порядке FIFO.
// Продолжения вызываются вне блокировки.
func (c *Coordinator) Settle(token string, err error) {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, cont := range queue {
		if err != nil {
			cont("", err)
			continue
		}

		cont(token, nil)
	}
}

// Refreshing сообщает, идёт ли обновление.
func (c *Coordinator) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// Pending — размер очереди ожидающих.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}
