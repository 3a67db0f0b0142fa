package cli

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"pizzastore/internal/account"
	"pizzastore/internal/apperr"
	"pizzastore/internal/auth"
	"pizzastore/internal/catalog"
	"pizzastore/internal/order"
	"pizzastore/models"
	"pizzastore/repository"
)

const unrecognized = "Unrecognized choice!"

// App is one interactive session. It starts anonymous, moves to an
// authenticated state on login and back on logout or session expiry.
type App struct {
	P        *Prompter
	Auth     *auth.Authenticator
	Accounts *account.Service
	Catalog  *catalog.Service
	Orders   *order.Service
	Log      logrus.FieldLogger
}

// Run drives the session until the user exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.greeting()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.P.Println("\nMAIN MENU")
		a.P.Println("---------")
		a.P.Println("1. Create user")
		a.P.Println("2. Log in")
		a.P.Println("9. < EXIT")
		a.P.Println()
		choice, err := a.P.Choice()
		if err != nil {
			return endOfInput(err)
		}
		switch choice {
		case 1:
			err = a.createUser(ctx)
		case 2:
			var s *auth.Session
			s, err = a.logIn(ctx)
			if err == nil && s != nil {
				err = a.userMenu(ctx, s)
			}
		case 9:
			return nil
		default:
			a.P.Println(unrecognized)
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (a *App) greeting() {
	a.P.Println("\n\n*******************************************************")
	a.P.Println("              User Interface")
	a.P.Println("*******************************************************")
}

// userMenu runs the authenticated state. It returns nil on logout or expiry
// and a non-nil error only when input ends.
func (a *App) userMenu(ctx context.Context, s *auth.Session) error {
	if s.Role != models.RoleCustomer {
		a.P.Printf("Logged in as a %s\n", s.Role)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := a.Auth.Resume(s.Token)
		if err != nil {
			a.report(err)
			return nil
		}
		pctx := auth.WithPrincipal(ctx, p)

		a.printUserMenu(p.Kind)
		choice, err := a.P.Choice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			a.report(a.Accounts.ViewProfile(pctx, a.P.out, p.Name))
		case 2:
			err = a.updateProfile(pctx, p)
		case 3:
			err = a.viewMenu(pctx)
		case 4:
			err = a.placeOrder(pctx, p)
		case 5:
			a.listOrders(pctx, p, order.Scope{Kind: order.ScopeAll})
		case 6:
			a.listOrders(pctx, p, order.Scope{Kind: order.ScopeRecent})
		case 7:
			err = a.viewOrder(pctx, p)
		case 8:
			_, serr := a.Catalog.ViewStores(pctx, a.P.out)
			a.report(serr)
		case 9:
			if !auth.CanViewAll(p.Kind) {
				a.P.Println(unrecognized)
				break
			}
			err = a.updateOrderStatus(pctx)
		case 10, 11:
			if p.Kind != models.RoleManager {
				a.P.Println(unrecognized)
				break
			}
			a.P.Println("This operation is not available yet.")
		case 20:
			return nil
		default:
			a.P.Println(unrecognized)
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) printUserMenu(role models.Role) {
	a.P.Println("\nMAIN MENU")
	a.P.Println("---------")
	a.P.Println("1. View Profile")
	a.P.Println("2. Update Profile")
	a.P.Println("3. View Menu")
	a.P.Println("4. Place Order")
	a.P.Println("5. View Full Order ID History")
	a.P.Println("6. View Past 5 Order IDs")
	a.P.Println("7. View Order Information")
	a.P.Println("8. View Stores")
	if auth.CanViewAll(role) {
		a.P.Println("9. Update Order Status")
	}
	if role == models.RoleManager {
		a.P.Println("10. Update Menu")
		a.P.Println("11. Update User")
	}
	a.P.Println(".........................")
	a.P.Println("20. Log out")
	a.P.Println()
}

func (a *App) createUser(ctx context.Context) error {
	login, err := a.P.String("login", models.MaxLoginLen)
	if err != nil {
		return err
	}
	password, err := a.P.String("password", models.MaxPasswordLen)
	if err != nil {
		return err
	}
	phone, err := a.P.String("phone number", models.MaxPhoneLen)
	if err != nil {
		return err
	}
	if err := a.Accounts.Register(ctx, login, password, phone); err != nil {
		a.report(err)
		return nil
	}
	a.P.Println("User created successfully!")
	return nil
}

// logIn returns a nil session when the credentials are rejected.
func (a *App) logIn(ctx context.Context) (*auth.Session, error) {
	login, err := a.P.String("login", models.MaxLoginLen)
	if err != nil {
		return nil, err
	}
	password, err := a.P.String("password", models.MaxPasswordLen)
	if err != nil {
		return nil, err
	}
	s, err := a.Auth.Login(ctx, login, password)
	if err != nil {
		a.report(err)
		return nil, nil
	}
	a.P.Printf("Welcome %s!\n", s.Login)
	return s, nil
}

func (a *App) updateProfile(ctx context.Context, p *auth.Principal) error {
	yes, err := a.P.YesNo("Would you like to update your password")
	if err != nil {
		return err
	}
	if yes {
		pw, err := a.P.String("password", models.MaxPasswordLen)
		if err != nil {
			return err
		}
		a.reportOr(a.Accounts.UpdatePassword(ctx, p.Name, pw), "Successfully updated password!")
	}

	yes, err = a.P.YesNo("Would you like to update your phone number")
	if err != nil {
		return err
	}
	if yes {
		phone, err := a.P.String("phone number", models.MaxPhoneLen)
		if err != nil {
			return err
		}
		a.reportOr(a.Accounts.UpdatePhone(ctx, p.Name, phone), "Successfully updated phone number!")
	}

	yes, err = a.P.YesNo("Would you like to update your favorite items")
	if err != nil {
		return err
	}
	if yes {
		fav, err := a.P.NonEmpty("Please enter your favorite items: ")
		if err != nil {
			return err
		}
		a.reportOr(a.Accounts.UpdateFavorites(ctx, p.Name, fav), "Successfully updated favorite items!")
	}
	return nil
}

func (a *App) viewMenu(ctx context.Context) error {
	for {
		a.P.Println("\nPlease select the type of menu you would like to see:")
		a.P.Println("1. All items")
		a.P.Println("2. Entrees")
		a.P.Println("3. Sides")
		a.P.Println("4. Drinks")
		a.P.Println("5. Items under a certain price")
		a.P.Println("9. Quit")
		choice, err := a.P.Choice()
		if err != nil {
			return err
		}
		var q repository.MenuQuery
		switch choice {
		case 1:
		case 2:
			q.Type = models.ItemEntree
		case 3:
			q.Type = models.ItemSides
		case 4:
			q.Type = models.ItemDrinks
		case 5:
			limit, err := a.P.Money("Please enter the maximum price: ")
			if err != nil {
				return err
			}
			q.MaxPrice = &limit
		case 9:
			return nil
		default:
			a.P.Println(unrecognized)
			continue
		}

		a.P.Println("\nIn what order would you like the menu?")
		a.P.Println("1. Default order")
		a.P.Println("2. Price (low to high)")
		a.P.Println("3. Price (high to low)")
		choice, err = a.P.Choice()
		if err != nil {
			return err
		}
		switch choice {
		case 1:
		case 2:
			q.Sort = repository.SortPriceAsc
		case 3:
			q.Sort = repository.SortPriceDesc
		default:
			a.P.Println(unrecognized)
			continue
		}

		a.P.Println("\n*******************************************************")
		a.P.Println("              Our Offerings")
		a.P.Println("*******************************************************")
		n, err := a.Catalog.ViewMenu(ctx, a.P.out, q)
		if err != nil {
			a.report(err)
			return nil
		}
		if n == 0 {
			a.P.Println("No items found for the selected criteria!")
		}
	}
}

func (a *App) placeOrder(ctx context.Context, p *auth.Principal) error {
	var storeID int
	for {
		id, err := a.P.PositiveInt("\nPlease enter the store ID that you want to order from: ")
		if err != nil {
			return err
		}
		ok, err := a.Catalog.StoreExists(ctx, id)
		if err != nil {
			a.report(err)
			return nil
		}
		if ok {
			storeID = id
			break
		}
		a.P.Printf("StoreID %d does not exist!\n", id)
	}

	menu, err := a.Orders.LoadCatalog(ctx)
	if err != nil {
		a.report(err)
		return nil
	}

	var pairs []order.Pair
	sel := order.NewSelections()
	for {
		item, err := a.P.Line("\nPlease enter the name of the item you want to order: ")
		if err != nil {
			return err
		}
		if !menu.Has(item) {
			a.P.Printf("Item %s does not exist!\n", item)
			continue
		}
		qty, err := a.P.PositiveInt("Please enter the quantity of " + item + " you want to order: ")
		if err != nil {
			return err
		}
		if err := sel.Add(item, qty); err != nil {
			a.report(err)
			continue
		}
		pairs = append(pairs, order.Pair{Item: item, Quantity: qty})
		more, err := a.P.YesNo("Would you like to order more items")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	r, err := a.Orders.PlaceOrder(ctx, p.Name, storeID, pairs)
	if err != nil {
		a.report(err)
		return nil
	}
	a.P.Println("\nYou ordered:")
	for _, l := range r.Quote.Lines {
		a.P.Printf("Item: %s, Quantity: %d, Price: %s\n", l.Item, l.Quantity, l.UnitCents)
	}
	a.P.Printf("The total price is: %s\n", r.Quote.Total)
	a.P.Printf("Your order ID is %d.\n", r.OrderID)
	return nil
}

func (a *App) listOrders(ctx context.Context, p *auth.Principal, scope order.Scope) {
	n, err := a.Orders.ViewOrders(ctx, a.P.out, p, scope)
	if err != nil {
		a.report(err)
		return
	}
	if n == 0 {
		a.P.Println("No orders found!")
	}
}

func (a *App) viewOrder(ctx context.Context, p *auth.Principal) error {
	id, err := a.P.PositiveInt("Please enter the Order ID: ")
	if err != nil {
		return err
	}
	_, verr := a.Orders.ViewOrders(ctx, a.P.out, p, order.Scope{Kind: order.ScopeByID, ID: int64(id)})
	a.report(verr)
	return nil
}

func (a *App) updateOrderStatus(ctx context.Context) error {
	id, err := a.P.PositiveInt("Please enter the Order ID for the order you want to update: ")
	if err != nil {
		return err
	}
	status, err := a.P.NonEmpty("Please enter the status you want to change the order to: ")
	if err != nil {
		return err
	}
	a.reportOr(a.Orders.UpdateStatus(ctx, int64(id), status), "Successfully updated order status!")
	return nil
}

// report prints a diagnostic for err and keeps the session going. Backend
// and consistency failures are also logged; denials are not.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	switch kind := apperr.KindOf(err); kind {
	case apperr.KindBackend, apperr.KindConsistency:
		a.P.Printf("Error: %v\n", err)
		if a.Log != nil {
			var e *apperr.Error
			op := ""
			if errors.As(err, &e) {
				op = e.Op
			}
			a.Log.WithFields(logrus.Fields{"op": op, "kind": kind.String(), "err": err}).Warn("operation failed")
		}
	default:
		a.P.Println(err.Error())
	}
}

func (a *App) reportOr(err error, success string) {
	if err != nil {
		a.report(err)
		return
	}
	a.P.Println(success)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
