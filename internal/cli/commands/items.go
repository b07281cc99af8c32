package commands

import (
	"MediaShelf/internal/cli/service"
	"MediaShelf/internal/config"
	"context"
	"fmt"
	"strings"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать записи коллекции" }
func (itemsCmd) Usage() string       { return "items <collectionId>" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	list, err := newShelfService(cfg).Items(ctx, args[0])
	if err != nil {
		return err
	}
	for _, it := range list {
		fmt.Fprintf(Out, "- %s  %s  [%s]  %s\n", it.ID, it.Name, it.Visibility, strings.Join(it.MediaList, ", "))
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Добавить запись в коллекцию" }
func (itemAddCmd) Usage() string {
	return "item-add <collectionId> <name> <description> <media-file> [everyone|owner]"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return ErrUsage
	}
	in := service.NewItem{CollectionID: args[0], Name: args[1], Description: args[2], MediaPath: args[3]}
	if len(args) == 5 {
		in.Visibility = args[4]
	}
	it, err := newShelfService(cfg).CreateItem(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Создана запись %s (%s)\n", it.Name, it.ID)
	return nil
}

type itemMoveCmd struct{}

func (itemMoveCmd) Name() string        { return "item-move" }
func (itemMoveCmd) Description() string { return "Перенести запись в другую свою коллекцию" }
func (itemMoveCmd) Usage() string       { return "item-move <itemId> <collectionId>" }

func (itemMoveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	it, err := newShelfService(cfg).MoveItem(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Запись %s теперь в коллекции %s\n", it.ID, it.CollectionID)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Удалить запись" }
func (itemDeleteCmd) Usage() string       { return "item-delete <itemId>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := newShelfService(cfg).DeleteItem(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Запись удалена")
	return nil
}

type favoriteCmd struct{}

func (favoriteCmd) Name() string        { return "favorite" }
func (favoriteCmd) Description() string { return "Добавить запись в избранное или убрать из него" }
func (favoriteCmd) Usage() string       { return "favorite <itemId>" }

func (favoriteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	it, fav, err := newShelfService(cfg).ToggleFavorite(ctx, args[0])
	if err != nil {
		return err
	}
	if fav {
		fmt.Fprintf(Out, "%s добавлена в избранное\n", it.Name)
	} else {
		fmt.Fprintf(Out, "%s убрана из избранного\n", it.Name)
	}
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemMoveCmd{})
	RegisterCmd(itemDeleteCmd{})
	RegisterCmd(favoriteCmd{})
}
