package commands

import (
	"MediaShelf/internal/cli/service"
	"MediaShelf/internal/config"
	"context"
	"fmt"
)

type collectionsCmd struct{}

func (collectionsCmd) Name() string { return "collections" }
func (collectionsCmd) Description() string {
	return "Показать видимые коллекции (или коллекции пользователя)"
}
func (collectionsCmd) Usage() string { return "collections [userId]" }

func (collectionsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	owner := ""
	if len(args) == 1 {
		owner = args[0]
	}
	list, err := newShelfService(cfg).Collections(ctx, owner)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет коллекций")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- %s  %s  [%s]  by %s\n", c.ID, c.Name, c.Visibility, c.Creator.Username)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type collectionCmd struct{}

func (collectionCmd) Name() string        { return "collection" }
func (collectionCmd) Description() string { return "Показать коллекцию с записями" }
func (collectionCmd) Usage() string       { return "collection <id>" }

func (collectionCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	c, err := newShelfService(cfg).Collection(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s  [%s]\n%s\ncover: %s\n", c.Name, c.Visibility, c.Description, c.CoverPicture)
	for _, it := range c.ItemList {
		fmt.Fprintf(Out, "- %s  %s  media=%d\n", it.ID, it.Name, len(it.MediaList))
	}
	return nil
}

type collectionAddCmd struct{}

func (collectionAddCmd) Name() string        { return "collection-add" }
func (collectionAddCmd) Description() string { return "Создать коллекцию с обложкой" }
func (collectionAddCmd) Usage() string {
	return "collection-add <name> <description> <cover-file> [everyone|owner]"
}

func (collectionAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	in := service.NewCollection{Name: args[0], Description: args[1], CoverPath: args[2]}
	if len(args) == 4 {
		in.Visibility = args[3]
	}
	c, err := newShelfService(cfg).CreateCollection(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Создана коллекция %s (%s)\n", c.Name, c.ID)
	return nil
}

type collectionDeleteCmd struct{}

func (collectionDeleteCmd) Name() string        { return "collection-delete" }
func (collectionDeleteCmd) Description() string { return "Удалить коллекцию вместе с записями" }
func (collectionDeleteCmd) Usage() string       { return "collection-delete <id>" }

func (collectionDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if err := newShelfService(cfg).DeleteCollection(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Коллекция удалена")
	return nil
}

func init() {
	RegisterCmd(collectionsCmd{})
	RegisterCmd(collectionCmd{})
	RegisterCmd(collectionAddCmd{})
	RegisterCmd(collectionDeleteCmd{})
}
