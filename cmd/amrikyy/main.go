package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Moeabdelaziz007/amrikyyai/internal/backend"
	"github.com/Moeabdelaziz007/amrikyyai/internal/config"
	"github.com/Moeabdelaziz007/amrikyyai/internal/domain"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
	"github.com/Moeabdelaziz007/amrikyyai/internal/logger"
	"github.com/Moeabdelaziz007/amrikyyai/internal/repository"
	"github.com/Moeabdelaziz007/amrikyyai/internal/session"
)

const banner = `Amrikyy AI — مساعدك في البرمجة والتطوير
اكتب رسالة، أو /help لقائمة الأوامر.`

const helpText = `/new            محادثة جديدة
/chats          قائمة المحادثات
/open <n>       فتح محادثة
/delete <n>     حذف محادثة
/upload <path>  رفع ملف
/docs           قائمة الملفات
/exit           خروج`

func main() {
	demo := flag.Bool("demo", false, "answer locally from the built-in knowledge base instead of the backend")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	fmt.Println(banner)

	ctx := context.Background()
	if *demo {
		runDemo(ctx, cfg)
		return
	}
	runChat(ctx, cfg)
}

// runChat drives the session store against a real backend.
func runChat(ctx context.Context, cfg *config.Config) {
	client := backend.NewClient(cfg.API)
	store := session.New(client, session.WithOptions(domain.QueryOptions{
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Sources:     cfg.Chat.Sources,
		Model:       cfg.Chat.Model,
	}))

	store.LoadConversations(ctx)
	if snap := store.Snapshot(); snap.Error != "" {
		fmt.Println(snap.Error)
		store.ClearError()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for prompt(); scanner.Scan(); prompt() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if cmd, arg, ok := parseCommand(line); ok {
			switch cmd {
			case "new":
				store.NewConversation()
				fmt.Println(domain.DefaultTitle)
			case "chats":
				printConversations(store.Snapshot().Conversations)
			case "open":
				snap := store.Snapshot()
				if conv, ok := pickConversation(snap.Conversations, arg); ok {
					store.SetActiveConversation(conv.ID)
					printTranscript(store.Snapshot().Messages)
				} else {
					fmt.Println("محادثة غير معروفة")
				}
			case "delete":
				snap := store.Snapshot()
				if conv, ok := pickConversation(snap.Conversations, arg); ok {
					if err := client.DeleteConversation(ctx, conv.ID); err != nil {
						fmt.Println("فشل حذف المحادثة")
					} else {
						store.LoadConversations(ctx)
					}
				} else {
					fmt.Println("محادثة غير معروفة")
				}
			case "upload":
				uploadFile(ctx, client, arg)
			case "docs":
				printDocuments(ctx, client)
			case "help":
				fmt.Println(helpText)
			case "exit", "quit":
				return
			default:
				fmt.Println(helpText)
			}
			continue
		}

		store.SendMessage(ctx, line)
		snap := store.Snapshot()
		if snap.Error != "" {
			fmt.Println(snap.Error)
			store.ClearError()
			continue
		}
		if len(snap.Messages) > 0 {
			printMessage(snap.Messages[len(snap.Messages)-1])
		}
	}
}

// runDemo drives the local canned-response engine, no backend required.
func runDemo(ctx context.Context, cfg *config.Config) {
	historyRepo, closeHistory, err := repository.NewHistory(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open chat history store")
	}
	defer closeHistory()

	eng := engine.New(ctx, historyRepo)
	var currentID string

	scanner := bufio.NewScanner(os.Stdin)
	for prompt(); scanner.Scan(); prompt() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if cmd, arg, ok := parseCommand(line); ok {
			switch cmd {
			case "new":
				chat := eng.NewChat(ctx)
				currentID = chat.ID
				fmt.Println(chat.Title)
			case "chats":
				printConversations(eng.Chats())
			case "open":
				if conv, ok := pickConversation(eng.Chats(), arg); ok {
					currentID = conv.ID
					printTranscript(conv.Messages)
				} else {
					fmt.Println("محادثة غير معروفة")
				}
			case "delete":
				if conv, ok := pickConversation(eng.Chats(), arg); ok {
					if err := eng.DeleteChat(ctx, conv.ID); err == nil {
						if conv.ID == currentID {
							currentID = ""
						}
					}
				} else {
					fmt.Println("محادثة غير معروفة")
				}
			case "upload":
				name := filepath.Base(arg)
				eng.RecordUpload(name)
				if resp, err := eng.AcknowledgeUpload(ctx, currentID, name); err == nil {
					currentID = resp.ConversationID
					fmt.Println(resp.Content)
				}
			case "docs":
				for _, doc := range eng.Documents() {
					fmt.Printf("%s  %s\n", doc.ID, doc.Filename)
				}
			case "help":
				fmt.Println(helpText)
			case "exit", "quit":
				return
			default:
				fmt.Println(helpText)
			}
			continue
		}

		fmt.Println("جاري التفكير...")
		resp, err := eng.Ask(ctx, currentID, line)
		if err != nil {
			fmt.Println("حدث خطأ أثناء إرسال الرسالة")
			continue
		}
		currentID = resp.ConversationID
		fmt.Println(resp.Content)
		for _, src := range resp.Sources {
			fmt.Printf("  • %s\n", src.Title)
		}
	}
}

func prompt() {
	fmt.Print("> ")
}

// parseCommand splits "/cmd arg" lines; ok is false for plain messages.
func parseCommand(line string) (cmd, arg string, ok bool) {
	if !strings.HasPrefix(line, "/") {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(line, "/"), " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg, true
}

// pickConversation resolves a 1-based index or a raw id.
func pickConversation(conversations []domain.Conversation, arg string) (domain.Conversation, bool) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(conversations) {
		return conversations[n-1], true
	}
	for _, c := range conversations {
		if c.ID == arg {
			return c, true
		}
	}
	return domain.Conversation{}, false
}

func printConversations(conversations []domain.Conversation) {
	if len(conversations) == 0 {
		fmt.Println("لا توجد محادثات سابقة")
		return
	}
	for i, c := range conversations {
		fmt.Printf("%2d. %s\n", i+1, c.Title)
	}
}

func printTranscript(messages []domain.Message) {
	for _, m := range messages {
		printMessage(m)
	}
}

func printMessage(m domain.Message) {
	who := "أنت"
	if m.Role == domain.RoleAssistant {
		who = "Amrikyy"
	}
	fmt.Printf("[%s] %s\n", who, m.Content)
	for _, src := range m.Sources {
		fmt.Printf("  • %s\n", src.Title)
	}
}

func uploadFile(ctx context.Context, client *backend.Client, path string) {
	file, err := os.Open(path)
	if err != nil {
		fmt.Println("تعذر فتح الملف")
		return
	}
	defer file.Close()

	upload, err := client.UploadDocument(ctx, filepath.Base(path), file)
	if err != nil {
		fmt.Println("فشل رفع الملف")
		return
	}
	fmt.Printf("تم رفع الملف (%s)\n", upload.Status)
}

func printDocuments(ctx context.Context, client *backend.Client) {
	docs, err := client.ListDocuments(ctx)
	if err != nil {
		fmt.Println("فشل في تحميل الملفات")
		return
	}
	for _, doc := range docs {
		fmt.Printf("%s  %s\n", doc.ID, doc.Filename)
	}
}
