package session

import (
	"sync"
	"testing"

	"github.com/windoze95/speakify-bot/internal/models"
)

func TestGet_UnseenUserIsIdle(t *testing.T) {
	table := NewTable()

	mode := table.Get(12345)
	if mode.State != StateIdle {
		t.Errorf("Get for unseen user = %q, want idle", mode.State)
	}
}

func TestSetGetClear(t *testing.T) {
	table := NewTable()

	table.Set(1, Mode{State: StateAwaitingQuestionText, Category: models.Part2})

	mode := table.Get(1)
	if mode.State != StateAwaitingQuestionText {
		t.Errorf("State = %q, want awaiting_question_text", mode.State)
	}
	if mode.Category != models.Part2 {
		t.Errorf("Category = %q, want part2", mode.Category)
	}

	table.Clear(1)
	if got := table.Get(1); got.State != StateIdle {
		t.Errorf("State after Clear = %q, want idle", got.State)
	}
}

func TestClear_Idempotent(t *testing.T) {
	table := NewTable()
	table.Set(7, Mode{State: StateAwaitingBroadcast})

	table.Clear(7)
	if got := table.Get(7); got.State != StateIdle {
		t.Errorf("State after first Clear = %q, want idle", got.State)
	}
	table.Clear(7)
	if got := table.Get(7); got.State != StateIdle {
		t.Errorf("State after second Clear = %q, want idle", got.State)
	}
}

func TestCurrentQuestion_SurvivesModeReset(t *testing.T) {
	table := NewTable()

	table.SetCurrentQuestion(5, "Describe your hometown.")
	table.Set(5, Mode{State: StateAwaitingVoiceAnswer})
	table.Clear(5)

	if got := table.CurrentQuestion(5); got != "Describe your hometown." {
		t.Errorf("CurrentQuestion = %q, want the stored question", got)
	}

	table.ClearCurrentQuestion(5)
	if got := table.CurrentQuestion(5); got != "" {
		t.Errorf("CurrentQuestion after clear = %q, want empty", got)
	}
}

func TestTable_ConcurrentAccess(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			table.Set(id, Mode{State: StateAwaitingQuestionText, Category: models.Part1})
			table.Get(id)
			table.Clear(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		if got := table.Get(i); got.State != StateIdle {
			t.Fatalf("user %d state = %q, want idle", i, got.State)
		}
	}
}

func TestLocks_SerializePerUser(t *testing.T) {
	locks := NewLocks()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(42)
			counter++
			locks.Unlock(42)
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestLocks_DistinctUsersDoNotBlock(t *testing.T) {
	locks := NewLocks()

	locks.Lock(1)
	done := make(chan struct{})
	go func() {
		locks.Lock(2)
		locks.Unlock(2)
		close(done)
	}()

	<-done // would deadlock if user 2 waited on user 1's lock
	locks.Unlock(1)
}
