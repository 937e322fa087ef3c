package env

import (
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Provider string        `env:"FIN_LLM_PROVIDER" envDefault:"ollama"`
	TopK     int           `env:"FIN_RAG_TOP_K"`
	Floor    float64       `env:"FIN_RAG_MIN_SIMILARITY"`
	Timeout  time.Duration `env:"FIN_RAG_TIMEOUT"`
	Enabled  bool          `env:"FIN_ENABLE_HTTP"`
	Title    string        `env:"FIN_TITLE"`
	Skipped  string        `env:"FIN_EMPTY"`
	NoTag    string
}

func TestMarshalEnv(t *testing.T) {
	out, err := MarshalEnv(&sample{
		Provider: "openai",
		TopK:     3,
		Floor:    0.15,
		Timeout:  3 * time.Second,
		Enabled:  true,
		Title:    "My advisor",
		NoTag:    "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"FIN_LLM_PROVIDER=openai\n"+
			"FIN_RAG_TOP_K=3\n"+
			"FIN_RAG_MIN_SIMILARITY=0.15\n"+
			"FIN_RAG_TIMEOUT=3s\n"+
			"FIN_ENABLE_HTTP=true\n"+
			"FIN_TITLE=\"My advisor\"\n",
		out)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "My advisor", parsed["FIN_TITLE"])
	assert.Equal(t, "3s", parsed["FIN_RAG_TIMEOUT"])
}

func TestMarshalEnv_Empty(t *testing.T) {
	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalEnv_FalseOverridesTrueDefault(t *testing.T) {
	type flags struct {
		HTTP     bool `env:"FIN_ENABLE_HTTP" envDefault:"true"`
		Telegram bool `env:"FIN_ENABLE_TELEGRAM" envDefault:"false"`
		Debug    bool `env:"FIN_DEBUG"`
	}

	out, err := MarshalEnv(&flags{})
	require.NoError(t, err)
	assert.Equal(t, "FIN_ENABLE_HTTP=false\n", out)

	out, err = MarshalEnv(&flags{HTTP: true, Telegram: true})
	require.NoError(t, err)
	assert.Equal(t, "FIN_ENABLE_HTTP=true\nFIN_ENABLE_TELEGRAM=true\n", out)
}

func TestMarshalEnv_TagOptions(t *testing.T) {
	type tg struct {
		Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	}
	out, err := MarshalEnv(&tg{Token: "123:abc"})
	require.NoError(t, err)
	assert.Equal(t, "TELEGRAM_TOKEN=123:abc\n", out)
}

func TestMarshalEnv_RequiresStructPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}
