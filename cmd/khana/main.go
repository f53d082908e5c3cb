package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/deepanshu0430/khana-client/internal/analytics"
	"github.com/deepanshu0430/khana-client/internal/cart"
	"github.com/deepanshu0430/khana-client/internal/catalog"
	"github.com/deepanshu0430/khana-client/internal/config"
	"github.com/deepanshu0430/khana-client/internal/order"
	"github.com/deepanshu0430/khana-client/internal/session"
	"github.com/deepanshu0430/khana-client/internal/storage"
)

type app struct {
	sessions *session.Manager
	dishes   *catalog.Client
	cart     *cart.Store
	orders   *order.Client
	checkout *order.Checkout
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cfg := config.Load()
	kv, err := newStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sessions := session.NewManager(kv)
	dishes := catalog.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	notify := func(ok bool, msg string) {
		if ok {
			fmt.Println(msg)
		} else {
			fmt.Println("Error:", msg)
		}
	}
	a := &app{
		sessions: sessions,
		dishes:   dishes,
		cart:     cart.NewStore(kv, dishes, sessions, notify),
		orders:   order.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, kv),
	}
	a.checkout = &order.Checkout{Cart: a.cart, Orders: a.orders, Sessions: sessions}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]
	var runErr error
	switch cmd {
	case "menu":
		runErr = a.runMenu(ctx, args)
	case "add":
		runErr = a.runAdd(ctx, args)
	case "cart":
		runErr = a.runCart(ctx)
	case "inc":
		runErr = a.runChange(ctx, args, 1)
	case "dec":
		runErr = a.runChange(ctx, args, -1)
	case "remove":
		runErr = a.runRemove(ctx, args)
	case "checkout":
		runErr = a.runCheckout(ctx, args)
	case "orders":
		runErr = a.runOrders(ctx, args)
	case "report":
		runErr = a.runReport(ctx)
	case "login":
		runErr = a.runLogin(ctx, args)
	case "logout":
		runErr = a.runLogout(ctx)
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		if errors.Is(runErr, session.ErrNotAuthenticated) {
			fmt.Println("Please log in first: khana login --token <token>")
			os.Exit(1)
		}
		log.Fatal(runErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: khana <command> [flags]

commands:
  menu      list dishes (--category, --diet veg,non-veg,egge)
  add       add a dish to the cart: add <dish-id>
  cart      show the cart with totals
  inc       increase quantity: inc <dish-id>
  dec       decrease quantity: dec <dish-id>
  remove    remove a line: remove <dish-id> [--yes]
  checkout  place the order (--payment cod|online)
  orders    list past orders (--date YYYY-MM-DD)
  report    profile with dietary and top-dish breakdowns
  login     store a session: login --token <t> [--name --email --address]
  logout    drop the session`)
}

func newStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case "file":
		return storage.NewFileStore(cfg.DataDir)
	case "redis":
		return storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})), nil
	default:
		return nil, fmt.Errorf("unknown KHANA_STORAGE %q", cfg.Storage)
	}
}

func (a *app) runMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	category := fs.String("category", "", "starters|main-course|dessert|beverages")
	diet := fs.String("diet", "", "comma separated dietary filters")
	_ = fs.Parse(args)

	dishes, err := a.dishes.Dishes(ctx)
	if err != nil {
		return err
	}
	dishes = catalog.FilterByCategory(dishes, *category)
	if *diet != "" {
		dishes = catalog.FilterByDietary(dishes, strings.Split(*diet, ","))
	}
	if len(dishes) == 0 {
		if *category != "" || *diet != "" {
			fmt.Println("No dishes match the selected filters")
		} else {
			fmt.Println("No dishes available")
		}
		return nil
	}
	qty, err := a.cart.Quantities(ctx)
	if err != nil {
		return err
	}
	for _, d := range dishes {
		line := fmt.Sprintf("%-12s ₹%8s  %-24s %s/%s",
			d.ID, d.Price.StringFixed(2), d.Name, d.Category, d.Dietary)
		if n := qty[d.ID]; n > 0 {
			line += fmt.Sprintf("  [in cart: %d]", n)
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: khana add <dish-id>")
	}
	id := args[0]
	dishes, err := a.dishes.Dishes(ctx)
	if err != nil {
		return err
	}
	name := ""
	for _, d := range dishes {
		if d.ID == id {
			name = d.Name
			break
		}
	}
	if name == "" {
		return fmt.Errorf("dish %q is not on the menu", id)
	}
	_, err = a.cart.AddItem(ctx, id, name)
	return err
}

func (a *app) runCart(ctx context.Context) error {
	lines, _, err := a.cart.Load(ctx)
	if err != nil {
		return err
	}
	printLines(lines)
	return nil
}

func (a *app) runChange(ctx context.Context, args []string, delta int) error {
	if len(args) != 1 {
		return errors.New("usage: khana inc|dec <dish-id>")
	}
	lines, err := a.cart.ChangeQuantity(ctx, args[0], delta)
	if err != nil {
		return err
	}
	printLines(lines)
	return nil
}

func (a *app) runRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: khana remove <dish-id> [--yes]")
	}
	if !*yes && !confirm("Remove this item from your cart?") {
		return nil
	}
	lines, err := a.cart.Remove(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printLines(lines)
	return nil
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	payment := fs.String("payment", order.PaymentCOD, "cod or online")
	_ = fs.Parse(args)

	lines, _, err := a.cart.Load(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}
	printLines(lines)
	msg, err := a.checkout.Place(ctx, lines, *payment)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	fmt.Println("See your order history with: khana orders")
	return nil
}

func (a *app) runOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	date := fs.String("date", "", "only orders from this day, YYYY-MM-DD")
	_ = fs.Parse(args)

	token, err := a.sessions.Token(ctx)
	if err != nil {
		return err
	}
	orders, err := a.orders.MyOrders(ctx, token)
	if errors.Is(err, order.ErrStale) {
		fmt.Println("Network error. Showing cached data.")
	} else if err != nil {
		return err
	}
	if *date != "" {
		day, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("bad --date %q: %w", *date, err)
		}
		orders = analytics.FilterByDate(orders, day)
		if len(orders) == 0 {
			fmt.Println("No orders for selected date")
			return nil
		}
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  [%s]\n",
			o.CreatedAt.Local().Format("Jan 2, 2006 15:04"), o.ID, strings.ToUpper(o.PaymentMode))
		for _, it := range o.Items {
			sub := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			fmt.Printf("    %-24s Qty: %d  ₹%s\n", it.Name, it.Quantity, sub.StringFixed(2))
		}
		fmt.Printf("    Total: ₹%s\n", o.TotalAmount.StringFixed(2))
	}
	return nil
}

func (a *app) runReport(ctx context.Context) error {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return err
	}
	name, email, addr := sess.Customer.Name, sess.Customer.Email, sess.Customer.Address
	if name == "" {
		name = "Guest User"
	}
	if email == "" {
		email = "Not Provided"
	}
	if addr == "" {
		addr = "No address provided"
	}
	fmt.Printf("%s\n%s\n%s\n\n", name, email, addr)

	token, err := a.sessions.Token(ctx)
	if err != nil {
		return err
	}
	orders, err := a.orders.MyOrders(ctx, token)
	if errors.Is(err, order.ErrStale) {
		fmt.Println("Network error. Showing cached data.")
	} else if err != nil {
		return err
	}
	fmt.Println("Dietary Preferences")
	printSlices(analytics.DietaryBreakdown(orders))
	fmt.Println("\nTop Dishes")
	printSlices(analytics.TopDishes(orders, 3))
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	token := fs.String("token", "", "session token from OTP verification")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	address := fs.String("address", "", "delivery address")
	_ = fs.Parse(args)
	if *token == "" {
		return errors.New("usage: khana login --token <token> [--name --email --address]")
	}
	sess, err := a.sessions.Login(ctx, *token, session.Customer{
		Name: *name, Email: *email, Address: *address,
	})
	if err != nil {
		return err
	}
	who := sess.Customer.Name
	if who == "" {
		who = "Guest User"
	}
	fmt.Printf("Logged in as %s\n", who)
	return nil
}

func (a *app) runLogout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func printLines(lines []cart.Line) {
	if len(lines) == 0 {
		fmt.Println("Your cart is empty")
		return
	}
	for _, l := range lines {
		sub := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		fmt.Printf("%-12s %-24s ₹%8s x%d = ₹%s\n",
			l.ID, l.Name, l.Price.StringFixed(2), l.Quantity, sub.StringFixed(2))
	}
	fmt.Printf("Total: ₹%s\n", cart.Total(lines).StringFixed(2))
}

func printSlices(slices []analytics.Slice) {
	if len(slices) == 0 {
		fmt.Println("  No data")
		return
	}
	for _, s := range slices {
		fmt.Printf("  %-24s %d\n", s.Name, s.Value)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
