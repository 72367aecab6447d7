// Package cli реализует команды консольного клиента pricetrack.
// Каждая команда - тонкая обертка над session/products сервисами:
// разбор аргументов, интерактивные промпты и форматирование вывода
package cli

import (
	"context"
	"fmt"

	"github.com/ndmitry/pricetrack/internal/client/auth"
	"github.com/ndmitry/pricetrack/internal/client/iocli"
	"github.com/ndmitry/pricetrack/pkg/api"
)

// SessionService покрывает операции сессии, которые нужны командам
type SessionService interface {
	Login(ctx context.Context, username, password string) (*api.UserInfo, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.UserInfo, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	State(ctx context.Context) (auth.State, error)
}

// ProductService покрывает операции каталога продуктов
type ProductService interface {
	List(ctx context.Context) ([]api.Product, error)
	GetByID(ctx context.Context, productID string) (*api.Product, error)
	Create(ctx context.Context, product api.NewProduct) (*api.Product, error)
	Update(ctx context.Context, productID string, patch api.ProductPatch) (*api.Product, error)
	Delete(ctx context.Context, productID string) (*api.DeleteResponse, error)
	AddPriceEntry(ctx context.Context, productID string, entry api.PriceEntry) (*api.Product, error)
	EditPriceEntry(ctx context.Context, productID string, entry api.PriceEntry) (*api.Product, error)
	DeletePriceEntry(ctx context.Context, productID, priceEntryID string) (*api.Product, error)
}

type Cli struct {
	io       iocli.IO
	session  SessionService
	products ProductService
}

func New(io iocli.IO, session SessionService, products ProductService) *Cli {
	return &Cli{
		io:       io,
		session:  session,
		products: products,
	}
}

// Run выполняет одну команду. Неизвестная команда возвращает ошибку,
// печать usage остается за вызывающим
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "add":
		return c.runAdd(ctx)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "price-add":
		return c.runPriceAdd(ctx, args)
	case "price-edit":
		return c.runPriceEdit(ctx, args)
	case "price-delete":
		return c.runPriceDelete(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func PrintUsage() {
	fmt.Println("PriceTrack Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pricetrack [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   API base URL (default: $BASE_PRICE_TRACKER_API_URL)")
	fmt.Println("  --db PATH      Path to local token database (default: pricetrack-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                               Sign in and store tokens")
	fmt.Println("  logout                              Delete local session")
	fmt.Println("  status                              Show session state")
	fmt.Println("  whoami                              Show current user")
	fmt.Println("  list                                List tracked products")
	fmt.Println("  get <id>                            Show product details and price history")
	fmt.Println("  add                                 Add a new product")
	fmt.Println("  edit <id>                           Edit product fields")
	fmt.Println("  delete <id>                         Delete a product")
	fmt.Println("  price-add <id>                      Record a new price for a product")
	fmt.Println("  price-edit <id> <price-entry-id>    Edit a recorded price")
	fmt.Println("  price-delete <id> <price-entry-id>  Delete a recorded price")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  pricetrack login")
	fmt.Println("  pricetrack list")
	fmt.Println("  pricetrack get b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  pricetrack price-add b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  pricetrack --server https://api.example.com login")
}
