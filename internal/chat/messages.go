package chat

// User-facing assistant strings. Indonesian, matching the persona the model
// is instructed with.
const (
	welcomeText = "Halo Bapak/Ibu Guru! 🏫\n\nSaya **GuruMate**, asisten pintar Anda.\n\nSilakan instruksikan saya untuk:\n- 📅 Menambahkan **Jadwal Pelajaran**\n- 📝 Memasukkan **Nilai Siswa**\n- ✍️ Mencatat **Kegiatan Siswa**\n- 🔔 Membuat **Pengingat**\n\nApa yang ingin Bapak/Ibu lakukan?"

	offlineText = "⚠️ **Anda sedang offline**. Mohon periksa koneksi internet Anda."

	connectivityFailureText = "📡 **Tidak dapat terhubung ke server AI.** Mohon periksa koneksi internet Anda, lalu kirim ulang pesan terakhir."

	authFailureText = "🔑 **Konfigurasi API tidak valid.** Kredensial layanan AI hilang atau ditolak; silakan hubungi administrator sistem."

	rateLimitText = "⏳ **Terlalu banyak permintaan.** Layanan AI sedang membatasi akses; mohon tunggu sebentar sebelum mencoba lagi."

	genericFailureText = "❌ Maaf, terjadi gangguan pada sistem. Silakan coba lagi nanti."

	// defaultReply covers responses that carry only tool calls and no text.
	defaultReply = "Permintaan Anda sedang diproses."

	// attachmentFallbackPrompt is sent when the user attaches a file with
	// no accompanying text.
	attachmentFallbackPrompt = "Tolong bantu analisis foto ini dan catat datanya."

	attachedFilePrefix = "📎 File terlampir"
)
