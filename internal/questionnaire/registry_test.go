package questionnaire_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mood-server/internal/ai"
	"mood-server/internal/mocks"
	"mood-server/internal/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRegistry(gen ai.Generator, opts ...questionnaire.AgentOption) *questionnaire.Registry {
	store := questionnaire.NewMemoryStore(time.Hour, zap.NewNop())
	return questionnaire.NewRegistry(store, questionnaire.NewAgent(gen, zap.NewNop(), opts...), zap.NewNop())
}

func TestRegistry_ExampleFlow(t *testing.T) {
	ctx := context.Background()
	seeds := questionnaire.DefaultSeedQuestions()
	gen := mocks.NewMockGenerator(t)
	var prompt string
	gen.On("Generate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return(block("你常運動嗎？"), nil).Once()
	reg := newRegistry(gen)

	res, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, seeds[0].Text(), res.Text)

	res, err = reg.Next(ctx, "u1", "室內")
	require.NoError(t, err)
	assert.Equal(t, seeds[1].Text(), res.Text)

	res, err = reg.Next(ctx, "u1", "室外")
	require.NoError(t, err)
	assert.Equal(t, block("你常運動嗎？"), res.Text)
	assert.Contains(t, prompt, "助理："+seeds[0].Text()+"\n使用者：室內\n助理："+seeds[1].Text()+"\n使用者：室外\n")
}

func TestRegistry_NoActiveSession(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(mocks.NewMockGenerator(t))

	_, err := reg.Next(ctx, "ghost", "A")
	assert.ErrorIs(t, err, questionnaire.ErrNoActiveSession)
	_, _, err = reg.Summarize(ctx, "ghost")
	assert.ErrorIs(t, err, questionnaire.ErrNoActiveSession)

	active, err := reg.Active(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestRegistry_SummarizeClosesSession(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("去爬山吧！", nil).Once()
	reg := newRegistry(gen)

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	_, err = reg.Next(ctx, "u1", "室外")
	require.NoError(t, err)

	summary, sess, err := reg.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "去爬山吧！", summary)
	assert.Equal(t, 1, sess.Step)

	_, err = reg.Next(ctx, "u1", "室內")
	assert.ErrorIs(t, err, questionnaire.ErrNoActiveSession)
	_, _, err = reg.Summarize(ctx, "u1")
	assert.ErrorIs(t, err, questionnaire.ErrNoActiveSession)

	_, err = reg.Start(ctx, "u1")
	assert.NoError(t, err)
}

func TestRegistry_FailedSummaryKeepsSession(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", ai.ErrGeneratorUnavailable).Once()
	gen.On("Generate", mock.Anything, mock.Anything).Return("看電影", nil).Once()
	reg := newRegistry(gen)

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)

	_, _, err = reg.Summarize(ctx, "u1")
	assert.ErrorIs(t, err, ai.ErrGeneratorUnavailable)

	summary, _, err := reg.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "看電影", summary)
}

func TestRegistry_StartDiscardsPreviousSession(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("推薦", nil).Once()
	reg := newRegistry(gen)

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	_, err = reg.Next(ctx, "u1", "室內")
	require.NoError(t, err)

	res, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, questionnaire.DefaultSeedQuestions()[0].Text(), res.Text)

	_, sess, err := reg.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Step)
	assert.Len(t, sess.Transcript, 1)
}

func TestRegistry_ZeroSeedsStartsInGeneration(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return(block("第一題？"), nil).Once()
	reg := newRegistry(gen, questionnaire.WithSeedQuestions(nil))

	res, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "問題：第一題？", res.Question.Title)
}

func TestRegistry_FailedStartStoresNothing(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", ai.ErrGeneratorUnavailable).Once()
	reg := newRegistry(gen, questionnaire.WithSeedQuestions(nil))

	_, err := reg.Start(ctx, "u1")
	assert.ErrorIs(t, err, ai.ErrGeneratorUnavailable)

	active, err := reg.Active(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestRegistry_ExhaustionKeepsSessionOpen(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("格式錯誤", nil).Times(questionnaire.DefaultMaxAttempts)
	gen.On("Generate", mock.Anything, mock.Anything).Return(block("終於？"), nil).Once()
	reg := newRegistry(gen)

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)
	_, err = reg.Next(ctx, "u1", "室內")
	require.NoError(t, err)

	res, err := reg.Next(ctx, "u1", "室外")
	require.NoError(t, err)
	assert.True(t, res.Exhausted)
	assert.Equal(t, questionnaire.ExhaustedMessage, res.Text)

	res, err = reg.Next(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "問題：終於？", res.Question.Title)
	gen.AssertNumberOfCalls(t, "Generate", questionnaire.DefaultMaxAttempts+1)
}

func TestRegistry_UnavailableLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return("", fmt.Errorf("%w: dial tcp", ai.ErrGeneratorUnavailable)).Once()
	gen.On("Generate", mock.Anything, mock.Anything).Return("散步", nil).Once()
	reg := newRegistry(gen, questionnaire.WithSeedQuestions(questionnaire.DefaultSeedQuestions()[:1]))

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)

	_, err = reg.Next(ctx, "u1", "室內")
	assert.ErrorIs(t, err, ai.ErrGeneratorUnavailable)

	_, sess, err := reg.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Step)
	assert.Len(t, sess.Transcript, 1)
}

func TestRegistry_SerializesCallsPerIdentity(t *testing.T) {
	ctx := context.Background()
	var inFlight, maxInFlight, calls int32
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, mock.Anything).Return(func(context.Context, string) (string, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			prev := atomic.LoadInt32(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		n := atomic.AddInt32(&calls, 1)
		return block(fmt.Sprintf("第%d題？", n)), nil
	})
	reg := newRegistry(gen, questionnaire.WithSeedQuestions(nil))

	_, err := reg.Start(ctx, "u1")
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Next(ctx, "u1", fmt.Sprintf("答%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))

	_, sess, err := reg.Summarize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, workers, sess.Step)
	assert.Equal(t, workers+1, sess.Transcript.Count(questionnaire.RoleAgent))
}

func TestRegistry_CancelledContext(t *testing.T) {
	reg := newRegistry(mocks.NewMockGenerator(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reg.Start(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
