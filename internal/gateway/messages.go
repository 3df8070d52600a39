package gateway

import (
	"fmt"

	"github.com/foxseedlab/wasit/internal/debate"
)

const (
	slashCommandDebateCreateDescription  = "Buat sesi debat terstruktur dengan timer ronde"
	slashCommandDebateJoinDescription    = "Gabung ke sisi debat"
	slashCommandDebateStartDescription   = "Mulai timer debat"
	slashCommandDebatePointDescription   = "Catat poin argumen untuk sisimu"
	slashCommandDebateSummaryDescription = "Lihat ringkasan debat"
	slashCommandDebateStopDescription    = "Hentikan dan reset sesi debat"
	slashCommandMoodDescription          = "Lihat ringkasan mood server"
	slashCommandLobbySetDescription      = "Set channel voice lobby untuk auto-create room pribadi"
	slashCommandLobbyOffDescription      = "Matikan auto-create room pribadi"
	slashCommandLobbyStatusDescription   = "Cek status VC lobby"

	optionSecondsDescription = "Durasi tiap ronde dalam detik"
	optionRoundsDescription  = "Jumlah ronde"
	optionTopicDescription   = "Topik debat"
	optionSideDescription    = "Sisi debat"
	optionPointDescription   = "Isi poin argumen"
	optionDaysDescription    = "Jumlah hari yang dicek (default: 1)"
	optionChannelDescription = "Voice channel lobby"

	messageEphemeralWrongGuild       = ":warning: **Command ini tidak bisa dipakai di server ini.**"
	messageEphemeralGuildOnly        = ":warning: **Command ini hanya untuk server.**"
	messageEphemeralUnknownCommand   = ":warning: **Command tidak dikenal.**"
	messageEphemeralUnexpected       = ":warning: **Terjadi kesalahan. Coba lagi nanti.**"
	messageEphemeralAlreadyExists    = ":warning: **Sesi debat sudah ada di channel ini.** Gunakan `/debat-stop` untuk mereset."
	messageEphemeralNoSession        = ":warning: **Belum ada sesi debat.** Gunakan `/debat-mulai`."
	messageEphemeralNoActiveSession  = ":warning: **Tidak ada sesi debat aktif.**"
	messageEphemeralInvalidSide      = ":warning: Pilih sisi: `pro` atau `kontra`."
	messageEphemeralNotAParticipant  = ":warning: **Kamu belum join sisi debat.**"
	messageEphemeralInsufficient     = ":warning: **Kedua sisi harus punya minimal 1 peserta.**"
	messageEphemeralEmptyPoint       = ":warning: **Poin tidak boleh kosong.**"
	messageEphemeralJoinAfterStart   = ":warning: **Debat sudah berjalan, tidak bisa join.**"
	messageEphemeralAlreadyRunning   = ":warning: **Debat sudah berjalan.**"
	messageEphemeralNotStarted       = ":warning: **Debat belum dimulai.** Gunakan `/debat-start`."
	messageEphemeralSummaryNotReady  = ":warning: **Ringkasan tersedia setelah debat dimulai.**"
	messageEphemeralInvalidPhase     = ":warning: **Perintah ini tidak bisa dipakai pada tahap debat saat ini.**"
	messageEphemeralMoodDisabled     = ":warning: **Pelacakan mood dinonaktifkan.**"
	messageEphemeralChannelRequired  = ":warning: **Pilih voice channel untuk lobby.**"
	messageEphemeralInvalidSettingsF = ":warning: **Pengaturan tidak valid.** Durasi ronde %d-%d detik, ronde 1-%d, dan topik wajib diisi."
	messageEphemeralShuttingDown     = ":warning: **Bot sedang dimatikan.** Sesi debat baru tidak bisa dibuat."

	messageDebateCreatedFormat = "🧠 Sesi debat dibuat.\nTopik: **%s**\nDurasi ronde: **%ds** • Ronde: **%d**\nJoin dengan `/debat-join sisi:pro` atau `/debat-join sisi:kontra`, lalu mulai dengan `/debat-start`."
	messageJoinedFormat        = "✅ <@%s> masuk sisi **%s**."
	messageSwitchedFormat      = "🔁 <@%s> pindah dari **%s** ke **%s**."
	messageAlreadyJoinedFormat = "ℹ️ <@%s> sudah berada di sisi **%s**."
	messageDebateStarted       = "🚀 Timer debat dijalankan."
	messagePointFormat         = "📝 Poin #%d %s (ronde %d) dicatat dari <@%s>: %s"
	messageDebateStopped       = "🛑 Sesi debat dihentikan dan direset."

	messageRoundStartedFormat  = "🎤 Debat dimulai!\nTopik: **%s**\nDurasi tiap ronde: **%s** • Ronde: **%d**"
	messageRoundProgressFormat = "🕒 Ronde %d/%d • berakhir <t:%d:R>"
	messageDebateEnded         = "✅ Debat selesai."
	messageDebateShutdown      = "🛑 Bot dimatikan, sesi debat dihentikan."
	messageDebateAbandoned     = "⌛ Sesi debat dibatalkan karena tidak dimulai tepat waktu."

	messageLobbySetFormat     = "✅ VC lobby diatur ke <#%s>. Masuk channel ini untuk membuat room pribadi."
	messageLobbyDisabled      = "🛑 Fitur auto-create VC dimatikan untuk server ini."
	messageLobbyNotConfigured = "Belum ada VC lobby yang dikonfigurasi."
	messageLobbyStatusFormat  = "🎙️ VC lobby aktif: <#%s>"
)

func invalidSettingsMessage(l debate.Limits) string {
	return fmt.Sprintf(messageEphemeralInvalidSettingsF,
		int(l.MinRoundDuration.Seconds()), int(l.MaxRoundDuration.Seconds()), l.MaxRoundCount)
}

func endReasonLabel(reason debate.EndReason) string {
	switch reason {
	case debate.EndReasonCompleted:
		return "semua ronde selesai"
	case debate.EndReasonStopped:
		return "dihentikan"
	case debate.EndReasonIdle:
		return "tidak dimulai tepat waktu"
	case debate.EndReasonShutdown:
		return "bot dimatikan"
	default:
		return "tidak diketahui"
	}
}
